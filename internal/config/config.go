package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/username/trail-availability/internal/booking"
)

// Config represents application configuration
type Config struct {
	Availability AvailabilityConfig `mapstructure:"availability"`
	Routes       RoutesConfig       `mapstructure:"routes"`
	Display      DisplayConfig      `mapstructure:"display"`
	Log          LogConfig          `mapstructure:"log"`
}

// AvailabilityConfig represents the booking service endpoint
type AvailabilityConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Timeout  string `mapstructure:"timeout"` // "0" disables the timeout
}

// RoutesConfig represents route selection and outbound links
type RoutesConfig struct {
	Default     string            `mapstructure:"default"`
	ContactURL  string            `mapstructure:"contact_url"`
	BookingURLs map[string]string `mapstructure:"booking_urls"` // route key → booking page
}

// DisplayConfig represents terminal output options
type DisplayConfig struct {
	Color bool `mapstructure:"color"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Availability: AvailabilityConfig{
			Endpoint: booking.DefaultEndpoint,
			Timeout:  "30s",
		},
		Routes: RoutesConfig{
			Default:    string(booking.DefaultRoute),
			ContactURL: booking.ContactURL,
		},
		Display: DisplayConfig{Color: true},
		Log:     LogConfig{Level: "warn"},
	}
}

// Load loads configuration from file. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("availability.endpoint", defaults.Availability.Endpoint)
	v.SetDefault("availability.timeout", defaults.Availability.Timeout)
	v.SetDefault("routes.default", defaults.Routes.Default)
	v.SetDefault("routes.contact_url", defaults.Routes.ContactURL)
	v.SetDefault("display.color", defaults.Display.Color)
	v.SetDefault("log.level", defaults.Log.Level)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.trail-availability")
	}

	v.SetEnvPrefix("TRAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Availability.Endpoint == "" {
		return fmt.Errorf("availability.endpoint is required")
	}
	if c.Availability.Timeout != "" {
		if _, err := parseTimeout(c.Availability.Timeout); err != nil {
			return fmt.Errorf("availability.timeout: %w", err)
		}
	}

	if _, err := booking.ParseRoute(c.Routes.Default); err != nil {
		return fmt.Errorf("routes.default: %w", err)
	}

	for key, url := range c.Routes.BookingURLs {
		if _, err := booking.ParseRoute(key); err != nil {
			return fmt.Errorf("routes.booking_urls: %w", err)
		}
		if url == "" {
			return fmt.Errorf("routes.booking_urls.%s must not be empty", key)
		}
	}

	return nil
}

// GetTimeout returns the request timeout. Zero means no timeout.
func (c *AvailabilityConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 30 * time.Second
	}
	duration, err := parseTimeout(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}

// DefaultRoute returns the configured initial route
func (c *RoutesConfig) DefaultRoute() booking.Route {
	route, err := booking.ParseRoute(c.Default)
	if err != nil {
		return booking.DefaultRoute
	}
	return route
}

// Links returns contact and booking URLs with overrides applied
func (c *RoutesConfig) Links() booking.Links {
	links := booking.DefaultLinks()
	if c.ContactURL != "" {
		links.Contact = c.ContactURL
	}
	for key, url := range c.BookingURLs {
		links.Bookings[booking.Route(key)] = url
	}
	return links
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Availability.Endpoint = os.ExpandEnv(c.Availability.Endpoint)
	c.Log.File = os.ExpandEnv(c.Log.File)
}

func parseTimeout(value string) (time.Duration, error) {
	if value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative, got %s", value)
	}
	return d, nil
}
