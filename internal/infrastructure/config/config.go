package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Riot  RiotConfig
	Roles RolesConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// RiotConfig holds the OAuth client settings for the Riot identity provider.
type RiotConfig struct {
	ClientID     string `env:"RIOT_CLIENT_ID,     required"`
	ClientSecret string `env:"RIOT_CLIENT_SECRET, required"`
	RedirectURI  string `env:"RIOT_REDIRECT_URI,  required"`
}

// RolesConfig holds the identifiers of the three seeded role tiers. All
// three are required: startup fails hard when any is missing.
type RolesConfig struct {
	DefaultID    string `env:"ROLE_DEFAULT_ID,     required"`
	AdminID      string `env:"ROLE_ADMIN_ID,       required"`
	SuperAdminID string `env:"ROLE_SUPER_ADMIN_ID, required"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=riftbuddy"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD, default="`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
