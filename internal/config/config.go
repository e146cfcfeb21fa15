package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-driven settings for the service.
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// SessionSecret signs session tokens. The process refuses to start
	// without it: serving authenticated routes with a generated secret
	// would silently invalidate every session on restart.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// AppBaseURL is used to build absolute links in outbound mail.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SessionRememberTTL   time.Duration `env:"SESSION_REMEMBER_TTL" envDefault:"168h"`
	FirstLoginSessionTTL time.Duration `env:"FIRST_LOGIN_SESSION_TTL" envDefault:"30m"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	DocumentBucket string `env:"DOCUMENT_BUCKET" envDefault:"motocase-documents"`

	BillingAPIKey        string `env:"BILLING_API_KEY"`
	BillingAPISecret     string `env:"BILLING_API_SECRET"`
	BillingBaseURL       string `env:"BILLING_BASE_URL" envDefault:"https://api.billing.example.com/v1"`
	BillingWebhookSecret string `env:"BILLING_WEBHOOK_SECRET"`
}

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
