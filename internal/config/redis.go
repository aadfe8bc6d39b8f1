package config

type RedisConfig struct {
	DB            int
	Url           string
	Password      string
	EventsChannel string
}

// Enabled reports whether events should fan out through Redis
func (c *RedisConfig) Enabled() bool {
	return c.Url != ""
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		DB:            getIntEnv("REDIS_DB", 0),
		Url:           getEnv("REDIS_ADDR", ""),
		Password:      getEnv("REDIS_PASSWORD", ""),
		EventsChannel: getEnv("REDIS_EVENTS_CHANNEL", "exam:events"),
	}
}
