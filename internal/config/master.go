package config

import "os"

type AppConfig struct {
	DebugMode      bool
	HttpConfig     *HttpConfig
	ExamConfig     *ExamConfig
	RunnerConfig   *RunnerConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	AuthConfig     *AuthConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		HttpConfig:     NewHttpConfig(),
		ExamConfig:     NewExamConfig(),
		RunnerConfig:   NewRunnerConfig(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		AuthConfig:     NewAuthConfig(),
	}
}
