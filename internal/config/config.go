package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AdProviderConfig holds the OAuth application settings for one ad platform.
type AdProviderConfig struct {
	BaseURL      string `yaml:"base_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Modash struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
	} `yaml:"modash"`
	Scheduler struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
	} `yaml:"scheduler"`
	Mailer struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		ListID  string `yaml:"list_id"`
	} `yaml:"mailer"`
	Ads struct {
		Meta   AdProviderConfig `yaml:"meta"`
		TikTok AdProviderConfig `yaml:"tiktok"`
	} `yaml:"ads"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret must be set")
	}

	return config, nil
}
