package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// workspace is a uniquely named directory owned by exactly one invocation
type workspace struct {
	id  string
	dir string
}

func newWorkspace(root string) (*workspace, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("prepare workspace root: %w", err)
	}
	id := uuid.NewString()
	dir := filepath.Join(root, id)
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &workspace{id: id, dir: dir}, nil
}

func (w *workspace) path(name string) string {
	return filepath.Join(w.dir, name)
}

func (w *workspace) writeSource(name, code string) error {
	if err := os.WriteFile(w.path(name), []byte(code), 0o600); err != nil {
		return fmt.Errorf("write source: %w", err)
	}
	return nil
}

// Close removes every artifact of the invocation
func (w *workspace) Close() error {
	return os.RemoveAll(w.dir)
}

// Reap removes workspaces abandoned by a crashed invocation. It returns the number removed.
func (r *Runner) Reap(maxAge time.Duration, now time.Time) (int, error) {
	return reapWorkspaces(r.root, maxAge, now)
}

func reapWorkspaces(root string, maxAge time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read workspace root: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := uuid.Parse(entry.Name()); err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < maxAge {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove workspace %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
