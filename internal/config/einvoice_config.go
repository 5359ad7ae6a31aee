package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// EInvoiceConfig represents the e-invoice provider configuration
type EInvoiceConfig struct {
	Provider ProviderConfig `toml:"provider"`
	HTTP     HTTPConfig     `toml:"http"`
}

// ProviderConfig contains credentials and endpoints for the government
// e-invoice API (or a GSP gateway in front of it).
type ProviderConfig struct {
	BaseURL      string `toml:"base_url"`
	Username     string `toml:"username"`
	Password     string `toml:"password"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// HTTPConfig contains timeout settings for provider calls
type HTTPConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// LoadEInvoiceConfig loads configuration from a TOML file
func LoadEInvoiceConfig(filename string) (*EInvoiceConfig, error) {
	config := &EInvoiceConfig{}
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if config.HTTP.TimeoutSeconds <= 0 {
		config.HTTP.TimeoutSeconds = 30
	}
	return config, nil
}
