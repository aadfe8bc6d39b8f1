package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LanguageConfig describes how one language is built and run. An empty CompileCmd
// means the language is interpreted.
type LanguageConfig struct {
	Name       string
	SourceFile string
	BinaryFile string
	CompileCmd string
	RunCmd     string
}

func (l LanguageConfig) Compiled() bool {
	return l.CompileCmd != ""
}

type RunnerConfig struct {
	WorkspaceDir       string
	CompileTimeout     time.Duration
	RunTimeout         time.Duration
	InterpretedTimeout time.Duration
	MaxConcurrency     int
	OutputLimitBytes   int
	ReaperInterval     time.Duration
	WorkspaceMaxAge    time.Duration
	Languages          []LanguageConfig
}

func NewRunnerConfig() *RunnerConfig {
	return &RunnerConfig{
		WorkspaceDir:       getEnv("RUNNER_WORKSPACE_DIR", filepath.Join(os.TempDir(), "exam-runner")),
		CompileTimeout:     getDurationEnv("RUNNER_COMPILE_TIMEOUT_MS", time.Millisecond, 5000),
		RunTimeout:         getDurationEnv("RUNNER_RUN_TIMEOUT_MS", time.Millisecond, 2000),
		InterpretedTimeout: getDurationEnv("RUNNER_INTERPRETED_TIMEOUT_MS", time.Millisecond, 3000),
		MaxConcurrency:     getIntEnv("RUNNER_MAX_CONCURRENCY", 16),
		OutputLimitBytes:   getIntEnv("RUNNER_OUTPUT_LIMIT_KB", 256) * 1024,
		ReaperInterval:     getDurationEnv("RUNNER_REAPER_INTERVAL_SEC", time.Second, 60),
		WorkspaceMaxAge:    getDurationEnv("RUNNER_WORKSPACE_MAX_AGE_SEC", time.Second, 300),
		Languages: []LanguageConfig{
			{
				Name:       "c",
				SourceFile: "main.c",
				BinaryFile: "main",
				CompileCmd: getEnv("RUNNER_C_COMPILE_CMD", "gcc {src} -o {bin}"),
				RunCmd:     getEnv("RUNNER_C_RUN_CMD", "{bin}"),
			},
			{
				Name:       "python",
				SourceFile: "main.py",
				RunCmd:     getEnv("RUNNER_PYTHON_RUN_CMD", "python3 {src}"),
			},
		},
	}
}

// Validate checks that execution budgets are tighter than the compile budget
func (c *RunnerConfig) Validate() error {
	if c.CompileTimeout <= 0 || c.RunTimeout <= 0 || c.InterpretedTimeout <= 0 {
		return fmt.Errorf("runner timeouts must be positive")
	}
	if c.RunTimeout >= c.CompileTimeout || c.InterpretedTimeout >= c.CompileTimeout {
		return fmt.Errorf("run timeouts (%s, %s) must be shorter than compile timeout %s",
			c.RunTimeout, c.InterpretedTimeout, c.CompileTimeout)
	}
	if c.MaxConcurrency <= 0 {
		return fmt.Errorf("runner concurrency must be positive, got %d", c.MaxConcurrency)
	}
	if c.ReaperInterval <= 0 {
		return fmt.Errorf("reaper interval must be positive, got %s", c.ReaperInterval)
	}
	return nil
}
