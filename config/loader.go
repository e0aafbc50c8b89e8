package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the public NextBus XML feed endpoint used when the
// config does not name one.
const DefaultBaseURL = "https://retro.umoiq.com/service/publicXMLFeed"

// DefaultActiveExpirySec governs how long an active-subset snapshot is
// considered fresh.
const DefaultActiveExpirySec = 600

// LoadAppConfig loads and validates the application configuration from config.yml.
// A .env file (if present) and environment variables override file values.
func LoadAppConfig() (*AppConfig, error) {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks a programmatically built config the same way LoadAppConfig does.
func Validate(cfg *AppConfig) error {
	applyDefaults(cfg)
	return validator.New().Struct(cfg)
}

func applyEnvOverrides(cfg *AppConfig) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	if v := os.Getenv("NEXTBUS_AGENCY"); v != "" {
		cfg.Agency.Tag = v
	}
	if v := os.Getenv("NEXTBUS_BASE_URL"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := os.Getenv("NEXTBUS_ACTIVE_EXPIRY_SEC"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			cfg.Active.ExpirySec = sec
		}
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Feed.BaseURL == "" {
		cfg.Feed.BaseURL = DefaultBaseURL
	}
	if cfg.Feed.TimeoutMS == 0 {
		cfg.Feed.TimeoutMS = 10000
	}
	if cfg.Active.ExpirySec == 0 {
		cfg.Active.ExpirySec = DefaultActiveExpirySec
	}
}
