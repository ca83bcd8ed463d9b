package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type HRIS struct {
	BaseURL  string        `env:"BASE_URL"`
	Timeout  time.Duration `env:"TIMEOUT, default=2s"`
	MaxConns int           `env:"MAX_CONNS, default=100"`
}

type History struct {
	Concurrency int `env:"CONCURRENCY, default=4"`
	MaxDays     int `env:"MAX_DAYS, default=31"`
}

type Config struct {
	Port           string        `env:"PORT, default=8080"`
	Timezone       string        `env:"ATTENDANCE_TIMEZONE, default=Asia/Jakarta"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=10s"`
	Verbose        bool          `env:"VERBOSE, default=false"`
	HRIS           HRIS          `env:",prefix=HRIS_"`
	History        History       `env:",prefix=HISTORY_"`
}

// Location resolves the configured timezone used to decide what "today" is.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	})
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
