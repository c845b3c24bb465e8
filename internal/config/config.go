package config

import (
	"os"
	"strings"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	AppEnv        string
	AppPort       string
	DBDriver      string
	DBDSN         string
	RedisAddr     string
	RedisPassword string
	LogLevel      string
	CORSOrigins   string
}

func Load() Config {
	driver := strings.ToLower(get("DB_DRIVER", "sqlite"))
	dsn := get("DB_DSN", "")
	if dsn == "" {
		if driver == "postgres" {
			dsn = must("DB_DSN")
		} else {
			dsn = "mtaa_fundi.db"
		}
	}
	return Config{
		AppEnv:        strings.ToLower(get("APP_ENV", EnvDevelopment)),
		AppPort:       get("APP_PORT", "8080"),
		DBDriver:      driver,
		DBDSN:         dsn,
		RedisAddr:     get("REDIS_ADDR", ""),
		RedisPassword: get("REDIS_PASSWORD", ""),
		LogLevel:      strings.ToLower(get("LOG_LEVEL", "info")),
		CORSOrigins:   get("CORS_ORIGINS", "*"),
	}
}

// Debug reports whether SQL statements should be echoed.
func (c Config) Debug() bool {
	return c.AppEnv == EnvDevelopment
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
