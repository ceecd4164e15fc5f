package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Address  string `env:"RUN_ADDRESS"  envDefault:"localhost:8080"`
	Database string `env:"DATABASE_URI" envDefault:""              validate:"required"`
	LogLvl   string `env:"LOG_LVL"      envDefault:"info"`

	TriggerSecret string `env:"TRIGGER_SECRET" envDefault:"" validate:"required"`

	TelegramAPI   string `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	TelegramToken string `env:"TELEGRAM_TOKEN"   envDefault:""                         validate:"required"`

	ShiftRate   int64         `env:"SHIFT_RATE"       envDefault:"0"    validate:"gt=0"`
	OffsetHours int           `env:"TZ_OFFSET_HOURS"  envDefault:"3"    validate:"gte=-12,lte=14"`
	SendDelay   time.Duration `env:"SEND_DELAY"       envDefault:"350ms"`
	Workers     int           `env:"BATCH_WORKERS"    envDefault:"4"    validate:"gte=1"`

	// ClampNegative floors the net payout at zero instead of reporting a
	// negative figure when debts exceed earnings.
	ClampNegative bool `env:"CLAMP_NEGATIVE_PAYOUT" envDefault:"false"`
}

func New() (*Config, error) {
	// Optional local overrides; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("can't parse environment: %w", err)
	}

	flag.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	flag.StringVar(&cfg.Database, "d", cfg.Database, "database DSN")
	flag.StringVar(&cfg.LogLvl, "l", cfg.LogLvl, "log level")
	flag.Parse()

	if !strings.HasPrefix(cfg.TelegramAPI, "http://") && !strings.HasPrefix(cfg.TelegramAPI, "https://") {
		cfg.TelegramAPI = "https://" + cfg.TelegramAPI
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on a missing or out-of-range value so a misconfigured
// process never reaches the trigger endpoint.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.SendDelay < 0 {
		return fmt.Errorf("invalid configuration: SEND_DELAY must not be negative")
	}
	return nil
}
