// Package runner executes untrusted candidate code as external processes,
// one isolated workspace per invocation.
package runner

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

var _ secondary.CodeExecutor = (*Runner)(nil)

// Runner dispatches to one variant per supported language
type Runner struct {
	root     string
	variants map[string]variant
	slots    chan struct{}
	limit    int
	logger   primary.Logger
}

// NewRunner builds the language variants described by cfg
func NewRunner(cfg *config.RunnerConfig, logger primary.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runner config: %w", err)
	}

	variants := make(map[string]variant, len(cfg.Languages))
	for _, lang := range cfg.Languages {
		v, err := newVariant(lang, cfg)
		if err != nil {
			return nil, fmt.Errorf("language %s: %w", lang.Name, err)
		}
		variants[strings.ToLower(lang.Name)] = v
	}

	return &Runner{
		root:     cfg.WorkspaceDir,
		variants: variants,
		slots:    make(chan struct{}, cfg.MaxConcurrency),
		limit:    cfg.OutputLimitBytes,
		logger:   logger,
	}, nil
}

func (r *Runner) Supports(language string) bool {
	_, ok := r.variants[strings.ToLower(strings.TrimSpace(language))]
	return ok
}

// Execute runs code once in a fresh workspace that is removed on every exit path
func (r *Runner) Execute(ctx context.Context, language, code, stdin string) (domain.ExecutionResult, error) {
	v, ok := r.variants[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return domain.FailedResult(domain.ExecStatusInternalError, "", "Unsupported language"),
			fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, language)
	}

	if err := r.acquireSlot(ctx); err != nil {
		return domain.FailedResult(domain.ExecStatusTimeLimitExceeded, "", domain.TimeLimitExceededMessage), nil
	}
	defer r.releaseSlot()

	ws, err := newWorkspace(r.root)
	if err != nil {
		r.logger.Error("Failed to allocate workspace", "error", err)
		return domain.FailedResult(domain.ExecStatusInternalError, "", err.Error()), nil
	}
	defer func() {
		if err := ws.Close(); err != nil {
			r.logger.Warn("Failed to remove workspace", "dir", ws.dir, "error", err)
		}
	}()

	if err := ws.writeSource(v.sourceFile(), code); err != nil {
		r.logger.Error("Failed to write source", "dir", ws.dir, "error", err)
		return domain.FailedResult(domain.ExecStatusInternalError, "", err.Error()), nil
	}

	res := v.run(ctx, ws, stdin, r.limit)
	r.logger.Debug("Execution finished", "language", language, "workspace", ws.id, "status", res.Status)
	return res, nil
}

func (r *Runner) acquireSlot(ctx context.Context) error {
	select {
	case r.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) releaseSlot() {
	select {
	case <-r.slots:
	default:
	}
}
