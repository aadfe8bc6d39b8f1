package config

type HttpConfig struct {
	Port       int
	CorsOrigin string
}

func NewHttpConfig() *HttpConfig {
	return &HttpConfig{
		Port:       getIntEnv("HTTP_PORT", 5000),
		CorsOrigin: getEnv("CORS_ORIGIN", "*"),
	}
}
