package config

import (
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/saeidalz13/battleship-fleet/api"
	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	cfgFile = "battleship-fleet/.env"

	defaultSubmitTimeout = time.Second * 10
)

type Config struct {
	Stage         string
	APIURL        string
	WsURL         string
	AccessToken   string
	GameId        string
	Transport     string
	SubmitTimeout time.Duration
	DatabaseURL   string
	LogLevel      string
}

type Option func(*Config) error

func WithStage(stage string) Option {
	return func(c *Config) error {
		if stage != StageProd && stage != StageDev {
			return cerr.ErrInvalidStage(stage)
		}
		c.Stage = stage
		return nil
	}
}

func WithTransport(transport string) Option {
	return func(c *Config) error {
		if transport == "" {
			return nil
		}
		if transport != api.TransportHTTP && transport != api.TransportWs {
			return cerr.ErrInvalidTransport(transport)
		}
		c.Transport = transport
		return nil
	}
}

func WithSubmitTimeout(raw string) Option {
	return func(c *Config) error {
		if raw == "" {
			return nil
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		c.SubmitTimeout = d
		return nil
	}
}

func New(optFuncs ...Option) (*Config, error) {
	c := Config{
		Stage:         StageDev,
		Transport:     api.TransportHTTP,
		SubmitTimeout: defaultSubmitTimeout,
		LogLevel:      "info",
	}
	for _, opt := range optFuncs {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// LoadEnvFile loads .env from the working directory or, failing that,
// from the user config dir. Production reads the real environment only.
func LoadEnvFile() error {
	if os.Getenv("STAGE") == StageProd {
		return nil
	}

	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}

	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		// no env file at all is fine in dev
		return nil
	}
	return godotenv.Load(absPath)
}

// FromEnv builds the config from environment variables.
func FromEnv() (*Config, error) {
	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = StageDev
	}

	c, err := New(
		WithStage(stage),
		WithTransport(os.Getenv("TRANSPORT")),
		WithSubmitTimeout(os.Getenv("SUBMIT_TIMEOUT")),
	)
	if err != nil {
		return nil, err
	}

	c.APIURL = os.Getenv("API_URL")
	c.WsURL = os.Getenv("WS_URL")
	c.AccessToken = os.Getenv("ACCESS_TOKEN")
	c.GameId = os.Getenv("GAME_ID")
	c.DatabaseURL = os.Getenv("DATABASE_URL")
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		c.LogLevel = lvl
	}

	return c, c.Validate()
}

func (c *Config) Validate() error {
	if c.GameId == "" {
		return cerr.ErrMissingConfig("GAME_ID")
	}
	if c.AccessToken == "" {
		return cerr.ErrMissingConfig("ACCESS_TOKEN")
	}

	switch c.Transport {
	case api.TransportWs:
		if c.WsURL == "" {
			return cerr.ErrMissingConfig("WS_URL")
		}
	default:
		if c.APIURL == "" {
			return cerr.ErrMissingConfig("API_URL")
		}
	}
	return nil
}
