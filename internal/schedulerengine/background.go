package schedulerengine

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
)

// WorkspaceReaper removes execution workspaces older than maxAge
type WorkspaceReaper interface {
	Reap(maxAge time.Duration, now time.Time) (int, error)
}

// TimerRestorer re-arms deadlines of sessions that were running before a restart
type TimerRestorer interface {
	Restore(ctx context.Context) (int, error)
}

// BackgroundEngine runs the startup timer restore and the periodic workspace reaper
type BackgroundEngine struct {
	RunnerCfg *config.RunnerConfig
	reaper    WorkspaceReaper
	restorer  TimerRestorer
	logger    primary.Logger
	now       func() time.Time
}

func NewBackgroundEngine(
	runnerCfg *config.RunnerConfig,
	reaper WorkspaceReaper,
	restorer TimerRestorer,
	logger primary.Logger,
) *BackgroundEngine {
	return &BackgroundEngine{
		RunnerCfg: runnerCfg,
		reaper:    reaper,
		restorer:  restorer,
		logger:    logger,
		now:       time.Now,
	}
}

// RestoreTimers must complete before the server accepts requests
func (e *BackgroundEngine) RestoreTimers(ctx context.Context) error {
	restored, err := e.restorer.Restore(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore timers: %w", err)
	}
	e.logger.Info("Restored session timers", "count", restored)
	return nil
}

// Run reaps stale workspaces on every tick until ctx is cancelled
func (e *BackgroundEngine) Run(ctx context.Context) error {
	if e.RunnerCfg.ReaperInterval <= 0 {
		return fmt.Errorf("reaper interval must be positive, got %s", e.RunnerCfg.ReaperInterval)
	}
	ticker := time.NewTicker(e.RunnerCfg.ReaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.reapOnce()
		}
	}
}

func (e *BackgroundEngine) reapOnce() {
	removed, err := e.reaper.Reap(e.RunnerCfg.WorkspaceMaxAge, e.now())
	if err != nil {
		e.logger.Error("Failed to reap workspaces", "error", err)
		return
	}
	if removed > 0 {
		e.logger.Info("Reaped stale workspaces", "count", removed)
	}
}
