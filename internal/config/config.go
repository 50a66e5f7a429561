package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	JWTSecret          string
	SeedOnStart        bool
	SubscriptionBuffer int
	RedisURL           string
	NATSURL            string
	EventChannelBase   string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// RelayEnabled reports whether cross-node event relaying is configured.
func (c Config) RelayEnabled() bool {
	return c.EventChannelBase != "" && (c.RedisURL != "" || c.NATSURL != "")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CLASSBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Classboard API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("seed.on_start", true)
	v.SetDefault("subscription.buffer", 16)
	v.SetDefault("event.channel_base", "")

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		JWTSecret:          v.GetString("jwt.secret"),
		SeedOnStart:        v.GetBool("seed.on_start"),
		SubscriptionBuffer: v.GetInt("subscription.buffer"),
		RedisURL:           v.GetString("redis.url"),
		NATSURL:            v.GetString("nats.url"),
		EventChannelBase:   v.GetString("event.channel_base"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.SubscriptionBuffer <= 0 {
		cfg.SubscriptionBuffer = 16
	}

	return cfg, nil
}
