package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL     string        `env:"PLANTA_API_URL,         default=https://production-records-backend.vercel.app"`
	RequestTimeout time.Duration `env:"PLANTA_REQUEST_TIMEOUT, default=30s"`
	Env            string        `env:"PLANTA_ENV,             default=development"`
	LogLevel       string        `env:"PLANTA_LOG_LEVEL,       default=info"`

	// CredentialsFile overrides the default per-user credentials path.
	CredentialsFile string `env:"PLANTA_CREDENTIALS_FILE"`

	Redis RedisConfig
	Stub  StubConfig
}

// RedisConfig selects the shared credential store. When Addr is empty the
// file store is used.
type RedisConfig struct {
	Addr string `env:"PLANTA_REDIS_ADDR"`
	DB   int    `env:"PLANTA_REDIS_DB, default=0"`
}

// StubConfig configures the local development backend.
type StubConfig struct {
	Port      string        `env:"PLANTA_STUB_PORT,       default=3300"`
	JWTSecret string        `env:"PLANTA_STUB_JWT_SECRET, default=planta-dev-secret"`
	TokenTTL  time.Duration `env:"PLANTA_STUB_TOKEN_TTL,  default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
