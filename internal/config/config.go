package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every runtime setting the API needs. Values come from
// the environment (optionally seeded from a .env file in main).
type Config struct {
	AppEnv        string `mapstructure:"APP_ENV"`
	ServerPort    string `mapstructure:"SERVER_PORT"`
	DBDSN         string `mapstructure:"DB_DSN"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	CORSOrigin    string `mapstructure:"CORS_ORIGIN"`
}

// Load reads configuration from the environment and applies defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_DSN", "root:root@tcp(127.0.0.1:3306)/freshmart?parseTime=true")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")

	// AutomaticEnv alone does not populate Unmarshal; bind each key.
	for _, key := range []string{
		"APP_ENV", "SERVER_PORT", "DB_DSN",
		"REDIS_ADDR", "REDIS_PASSWORD", "JWT_SECRET", "CORS_ORIGIN",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the API runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
