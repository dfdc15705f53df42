// Package config loads process settings with viper.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"heatman/internal/logger"

	"github.com/spf13/viper"
)

// Storage drivers for the heater configuration document.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

const envPrefix = "HEATMAN"

type Settings struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	Heater struct {
		Interval        time.Duration `mapstructure:"interval"`
		ProbeWhenForced bool          `mapstructure:"probe_when_forced"`
		ConfigPath      string        `mapstructure:"config_path"`
	} `mapstructure:"heater"`

	Storage struct {
		Driver string `mapstructure:"driver"`
		DBPath string `mapstructure:"db_path"`
	} `mapstructure:"storage"`

	MetricsSource struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"metrics_source"`

	Presence struct {
		Address    string        `mapstructure:"address"`
		LockURL    string        `mapstructure:"lock_url"`
		Timeout    time.Duration `mapstructure:"timeout"`
		Privileged bool          `mapstructure:"privileged"`
	} `mapstructure:"presence"`

	Plug struct {
		URL      string `mapstructure:"url"`
		SwitchID int    `mapstructure:"switch_id"`
	} `mapstructure:"plug"`

	HTTPClient struct {
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"http_client"`

	Auth struct {
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"auth"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5567")
	v.SetDefault("log_level", logger.InfoLevel)

	v.SetDefault("heater.interval", 15*time.Second)
	v.SetDefault("heater.probe_when_forced", true)
	v.SetDefault("heater.config_path", "heater_config.json")

	v.SetDefault("storage.driver", StorageFile)
	v.SetDefault("storage.db_path", "heatman.db")

	v.SetDefault("metrics_source.url", "http://localhost:8000")

	v.SetDefault("presence.address", "192.168.178.89")
	v.SetDefault("presence.lock_url", "http://192.168.178.89:26969/")
	v.SetDefault("presence.timeout", time.Second)
	v.SetDefault("presence.privileged", false)

	v.SetDefault("plug.url", "http://192.168.178.86/rpc/")
	v.SetDefault("plug.switch_id", 0)

	v.SetDefault("http_client.timeout", 10*time.Second)

	v.SetDefault("auth.jwt_secret", "")
}

// Load reads config.yml from the given directories (a missing file is fine),
// applies HEATMAN_* environment overrides and validates the result.
func Load(paths ...string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings that would otherwise fail late.
func (s *Settings) Validate() error {
	var errs []error
	if s.Heater.Interval <= 0 {
		errs = append(errs, fmt.Errorf("heater.interval must be positive, got %s", s.Heater.Interval))
	}
	if s.Presence.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("presence.timeout must be positive, got %s", s.Presence.Timeout))
	}
	if s.HTTPClient.Timeout < 0 {
		errs = append(errs, fmt.Errorf("http_client.timeout must not be negative, got %s", s.HTTPClient.Timeout))
	}
	if _, err := s.PresenceIP(); err != nil {
		errs = append(errs, err)
	}
	switch s.Storage.Driver {
	case StorageFile, StorageSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be %q or %q, got %q", StorageFile, StorageSQLite, s.Storage.Driver))
	}
	if !logger.ValidLevel(s.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error", s.LogLevel))
	}
	if s.Plug.SwitchID < 0 {
		errs = append(errs, fmt.Errorf("plug.switch_id must not be negative, got %d", s.Plug.SwitchID))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// PresenceIP parses presence.address as an IPv4 address.
func (s *Settings) PresenceIP() (net.IP, error) {
	ip := net.ParseIP(strings.TrimSpace(s.Presence.Address))
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("presence.address %q is not an IPv4 address", s.Presence.Address)
	}
	return ip.To4(), nil
}
