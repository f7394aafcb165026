package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pascal910107/objectid"
)

const (
	FormatHex  = "hex"
	FormatSlim = "slim"
)

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "format", Default: FormatHex, Comment: "Output encoding when no subcommand is given: hex or slim"},
		{Key: "alphabet", Default: objectid.DefaultAlphabet, Comment: "64-character alphabet used by slim encoding"},
		{Key: "count", Default: 1, Comment: "Number of ids printed per invocation"},
	}
}

// Config is the resolved, typed view of the Viper settings.
type Config struct {
	Format   string
	Alphabet string
	Count    int
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// Flags bound by the caller sit on top of all three.
func Load(v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "objectid"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "objectid"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing file is only fatal when the user asked for one
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: OBJECTID_*
	v.SetEnvPrefix("objectid")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.Set("format", strings.ToLower(strings.TrimSpace(v.GetString("format"))))
	return nil
}

// FromViper snapshots the settings into a Config.
func FromViper(v *viper.Viper) Config {
	return Config{
		Format:   v.GetString("format"),
		Alphabet: v.GetString("alphabet"),
		Count:    v.GetInt("count"),
	}
}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	switch f := v.GetString("format"); f {
	case FormatHex, FormatSlim:
	default:
		errs = append(errs, fmt.Errorf("format must be %q or %q, got %q", FormatHex, FormatSlim, f))
	}
	if _, err := objectid.ToSlim(nil, v.GetString("alphabet")); err != nil {
		errs = append(errs, fmt.Errorf("alphabet: %w", err))
	}
	if v.GetInt("count") <= 0 {
		errs = append(errs, errors.New("count must be greater than 0"))
	}
	return errors.Join(errs...)
}
