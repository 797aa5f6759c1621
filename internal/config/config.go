package config

import (
	"errors"
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	Port      int           `env:"PORT" envDefault:"8080"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv    string        `env:"APP_ENV" envDefault:"production"`

	LedgerCapacity        int  `env:"LEDGER_CAPACITY" envDefault:"100"`
	AllowNegativeBalances bool `env:"ALLOW_NEGATIVE_BALANCES" envDefault:"true"`

	InitialPrimary   int64 `env:"INITIAL_PRIMARY" envDefault:"10000"`
	InitialSecondary int64 `env:"INITIAL_SECONDARY" envDefault:"20"`
	InitialTertiary  int64 `env:"INITIAL_TERTIARY" envDefault:"100"`

	ForecastMaxWeeks   int   `env:"FORECAST_MAX_WEEKS" envDefault:"52"`
	ForecastLowBalance int64 `env:"FORECAST_LOW_BALANCE" envDefault:"50"`
	ForecastOverspend  int64 `env:"FORECAST_OVERSPEND" envDefault:"50"`

	IdempotencyTTL       time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
	IdempotencyCacheSize int           `env:"IDEMPOTENCY_CACHE_SIZE" envDefault:"10000"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads a .env file when one is present, then parses the environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.LedgerCapacity < 1 {
		errs = append(errs, fmt.Errorf("LEDGER_CAPACITY must be at least 1, got %d", c.LedgerCapacity))
	}
	if c.ForecastMaxWeeks < 1 {
		errs = append(errs, fmt.Errorf("FORECAST_MAX_WEEKS must be at least 1, got %d", c.ForecastMaxWeeks))
	}
	if c.IdempotencyCacheSize < 1 {
		errs = append(errs, fmt.Errorf("IDEMPOTENCY_CACHE_SIZE must be at least 1, got %d", c.IdempotencyCacheSize))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	return errors.Join(errs...)
}
