package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("EXAM_DURATION_MIN", "")
	t.Setenv("MAX_VIOLATIONS", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := NewSystemConfig()
	assert.Equal(t, time.Hour, cfg.ExamConfig.Duration)
	assert.Equal(t, 3, cfg.ExamConfig.MaxViolations)
	assert.Equal(t, 5000, cfg.HttpConfig.Port)
	assert.False(t, cfg.RedisConfig.Enabled())
	assert.Equal(t, "exam:events", cfg.RedisConfig.EventsChannel)
	require.NoError(t, cfg.RunnerConfig.Validate())
	require.Len(t, cfg.RunnerConfig.Languages, 2)
	assert.True(t, cfg.RunnerConfig.Languages[0].Compiled())
	assert.False(t, cfg.RunnerConfig.Languages[1].Compiled())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EXAM_DURATION_MIN", "90")
	t.Setenv("RUNNER_RUN_TIMEOUT_MS", "1500")
	t.Setenv("RUNNER_OUTPUT_LIMIT_KB", "4")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_PORT", "not-a-number")

	cfg := NewSystemConfig()
	assert.Equal(t, 90*time.Minute, cfg.ExamConfig.Duration)
	assert.Equal(t, 1500*time.Millisecond, cfg.RunnerConfig.RunTimeout)
	assert.Equal(t, 4096, cfg.RunnerConfig.OutputLimitBytes)
	assert.True(t, cfg.RedisConfig.Enabled())
	assert.Equal(t, 5000, cfg.HttpConfig.Port)
}

func TestZeroReaperIntervalIsRejected(t *testing.T) {
	t.Setenv("RUNNER_REAPER_INTERVAL_SEC", "0")

	cfg := NewSystemConfig()
	assert.Zero(t, cfg.RunnerConfig.ReaperInterval)
	assert.Error(t, cfg.RunnerConfig.Validate())
}

func TestRunnerValidate(t *testing.T) {
	valid := func() *RunnerConfig {
		return &RunnerConfig{
			CompileTimeout:     5 * time.Second,
			RunTimeout:         2 * time.Second,
			InterpretedTimeout: 3 * time.Second,
			MaxConcurrency:     4,
			ReaperInterval:     time.Minute,
		}
	}
	require.NoError(t, valid().Validate())

	c := valid()
	c.RunTimeout = 5 * time.Second
	assert.Error(t, c.Validate())

	c = valid()
	c.InterpretedTimeout = 6 * time.Second
	assert.Error(t, c.Validate())

	c = valid()
	c.CompileTimeout = 0
	assert.Error(t, c.Validate())

	c = valid()
	c.MaxConcurrency = 0
	assert.Error(t, c.Validate())

	c = valid()
	c.ReaperInterval = 0
	assert.Error(t, c.Validate())
}
