package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/99minutos/marketplace-roles/internal/core/domain"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Token     TokenConfig
	Directory DirectoryConfig
}

// TokenConfig selects the token mode. An empty secret issues unsigned tokens.
type TokenConfig struct {
	SigningSecret string `env:"TOKEN_SIGNING_SECRET"`
}

// DirectoryConfig describes the two fixed directory entries. A bcrypt hash,
// when given, takes precedence over the plaintext password.
type DirectoryConfig struct {
	BuyerUsername     string `env:"BUYER_USERNAME,  default=buyer1"`
	BuyerPassword     string `env:"BUYER_PASSWORD,  default=buyerpass"`
	BuyerPasswordHash string `env:"BUYER_PASSWORD_HASH"`

	SellerUsername     string `env:"SELLER_USERNAME, default=seller1"`
	SellerPassword     string `env:"SELLER_PASSWORD, default=sellerpass"`
	SellerPasswordHash string `env:"SELLER_PASSWORD_HASH"`
}

// Records converts the directory settings into user records.
func (d DirectoryConfig) Records() []domain.UserRecord {
	return []domain.UserRecord{
		{Username: d.BuyerUsername, Password: d.BuyerPassword, PasswordHash: d.BuyerPasswordHash, Role: domain.RoleBuyer},
		{Username: d.SellerUsername, Password: d.SellerPassword, PasswordHash: d.SellerPasswordHash, Role: domain.RoleSeller},
	}
}

// Development reports whether the service runs in the development environment.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
