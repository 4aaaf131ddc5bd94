package config

import (
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	Service *svcConfig
	Calc    *calcConfig
}

type svcConfig struct {
	Address   string  `envconfig:"PUMPCALC_ADDRESS" default:":8080"`
	TLSCert   string  `envconfig:"PUMPCALC_TLS_CERT" default:""`
	TLSKey    string  `envconfig:"PUMPCALC_TLS_KEY" default:""`
	TokenKey  string  `envconfig:"TOKEN_KEY" default:""`
	LogLevel  string  `envconfig:"PUMPCALC_LOG_LEVEL" default:"info"`
	RateLimit float64 `envconfig:"PUMPCALC_RATE_LIMIT" default:"1"`
	RateBurst int     `envconfig:"PUMPCALC_RATE_BURST" default:"3"`
}

type calcConfig struct {
	DefaultDensity   float64 `envconfig:"PUMPCALC_DEFAULT_DENSITY" default:"1000"`
	SweepPoints      int     `envconfig:"PUMPCALC_SWEEP_POINTS" default:"20"`
	SweepMinFlowRate float64 `envconfig:"PUMPCALC_SWEEP_MIN_FLOW" default:"0.001"`
	Precision        int     `envconfig:"PUMPCALC_PRECISION" default:"3"`
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}
	return New()
}

func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Calc.DefaultDensity <= 0 {
		return errors.Errorf("default density must be positive, got %g", c.Calc.DefaultDensity)
	}
	if c.Calc.SweepPoints < 2 {
		return errors.Errorf("sweep points must be at least 2, got %d", c.Calc.SweepPoints)
	}
	if c.Calc.SweepMinFlowRate <= 0 {
		return errors.Errorf("sweep minimum flow must be positive, got %g", c.Calc.SweepMinFlowRate)
	}
	if c.Calc.Precision < 0 || c.Calc.Precision > 10 {
		return errors.Errorf("precision must be within 0..10, got %d", c.Calc.Precision)
	}
	if (c.Service.TLSCert == "") != (c.Service.TLSKey == "") {
		return errors.New("tls cert and key must be set together")
	}
	if c.Service.RateLimit <= 0 || c.Service.RateBurst <= 0 {
		return errors.New("rate limit and burst must be positive")
	}
	return nil
}

func (c *Config) TLS() bool {
	return c.Service.TLSCert != "" && c.Service.TLSKey != ""
}
