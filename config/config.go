// Package config loads application settings from a yaml file, a .env file,
// and the process environment, in that order of precedence (environment
// wins). Settings are read once at startup; the resulting struct is treated
// as read-only afterwards.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "RENTALS"

// Config holds every tunable the service reads at startup
type Config struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	DSN             string `mapstructure:"dsn"`
	SigningKey      string `mapstructure:"signing_key"`
	SigningMethod   string `mapstructure:"signing_method"`
	ContextKey      string `mapstructure:"context_key"`
	TokenTTLMinutes int    `mapstructure:"token_ttl_minutes"`
	TokenLookup     string `mapstructure:"token_lookup"`
	AuthScheme      string `mapstructure:"auth_scheme"`
	UploadDir       string `mapstructure:"upload_dir"`
	PictureBaseURL  string `mapstructure:"picture_base_url"`
	Debug           bool   `mapstructure:"debug"`
}

func (c *Config) GetSigningKey() string    { return c.SigningKey }
func (c *Config) GetSigningMethod() string { return c.SigningMethod }
func (c *Config) GetContextKey() string    { return c.ContextKey }
func (c *Config) GetTokenTTLMinutes() int  { return c.TokenTTLMinutes }
func (c *Config) GetTokenLookup() string   { return c.TokenLookup }
func (c *Config) GetAuthScheme() string    { return c.AuthScheme }

// Validate checks the settings no default can supply
func (c *Config) Validate() error {
	if c.SigningKey == "" {
		return fmt.Errorf("config: signing_key is required, set %s_SIGNING_KEY", envPrefix)
	}
	return nil
}

// Load reads configuration from the optional config file and the
// environment. A missing config file is not an error; defaults and
// environment variables cover every key.
func Load(configFile string) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone is not consulted by Unmarshal; every key needs an
	// explicit binding for environment values to survive into the struct.
	for _, key := range v.AllKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: failed to bind %s: %w", key, err)
		}
	}

	if configFile == "" {
		configFile = findConfigFile()
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":3001")
	v.SetDefault("dsn", "file:rentals.db?cache=shared&_pragma=foreign_keys(1)")
	v.SetDefault("signing_method", "HS256")
	v.SetDefault("context_key", "user")
	v.SetDefault("token_ttl_minutes", 30)
	v.SetDefault("token_lookup", "header:Authorization")
	v.SetDefault("auth_scheme", "Bearer")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("picture_base_url", "http://localhost:3001/api/images/")
	v.SetDefault("debug", false)
}

func loadDotEnv() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Printf("[config] warning: failed to load %s: %v\n", path, err)
			}
			return
		}
	}
}

func findConfigFile() string {
	for _, path := range []string{"./config.yml", "./config/config.yml", "../config/config.yml"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
