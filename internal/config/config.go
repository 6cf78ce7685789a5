// Package config loads the flash profile and CLI defaults with viper.
//
// Settings are read from an optional partcheck.yaml, PARTCHECK_* environment
// variables and finally command line overrides. A missing config file is not
// an error; the built-in ESP32S3 16MB profile is used.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-partcheck/pkg/analysis"
)

const (
	// ConfigName is the config file base name searched for
	ConfigName = "partcheck"

	// EnvPrefix prefixes environment overrides, e.g. PARTCHECK_PROFILE_FLASH_SIZE
	EnvPrefix = "PARTCHECK"
)

// Config holds the resolved settings for a run
type Config struct {
	Profile       analysis.FlashProfile `mapstructure:"profile" yaml:"profile"`
	Output        string                `mapstructure:"output" yaml:"output"`
	NoColor       bool                  `mapstructure:"no_color" yaml:"no_color"`
	WatchDebounce time.Duration         `mapstructure:"watch_debounce" yaml:"watch_debounce"`
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// File is an explicit config file; it must exist when set
	File string

	// SearchPaths overrides the default search locations
	SearchPaths []string
}

// DefaultSearchPaths are searched for partcheck.yaml in order
var DefaultSearchPaths = []string{".", "./config", "$HOME/.partcheck", "/etc/partcheck"}

// Load resolves configuration from file, environment and defaults
func Load(opts LoadOptions) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		paths := opts.SearchPaths
		if paths == nil {
			paths = DefaultSearchPaths
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// Decode unmarshals and validates the settings held by v
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		sizeDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flash profile: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	p := analysis.DefaultProfile()
	v.SetDefault("profile.name", p.Name)
	v.SetDefault("profile.flash_size", p.FlashSize)
	v.SetDefault("profile.reserved_size", p.ReservedSize)
	v.SetDefault("profile.min_ota_slots", p.MinOTASlots)
	v.SetDefault("profile.app_ample_size", p.AppAmpleSize)
	v.SetDefault("profile.app_moderate_size", p.AppModerateSize)
	v.SetDefault("profile.spiffs_ample_size", p.SPIFFSAmpleSize)
	v.SetDefault("profile.high_utilization", p.HighUtilization)
	v.SetDefault("profile.good_utilization", p.GoodUtilization)
	v.SetDefault("output", "table")
	v.SetDefault("no_color", false)
	v.SetDefault("watch_debounce", 200*time.Millisecond)
}

// sizeDecodeHook lets size fields be written as "16MB", "0x1000000" or 16777216
func sizeDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Uint64 {
			return data, nil
		}
		return ParseSize(data.(string))
	}
}
