package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// RenderTOML renders the effective settings of v as TOML, annotated with
// the option comments. Passing a fresh Viper with defaults applied yields
// a starter config file.
func RenderTOML(v *viper.Viper) string {
	var b strings.Builder
	b.WriteString("# objectid configuration (TOML)\n")
	for _, o := range GetConfigOptions() {
		writeTOMLOption(&b, o.Key, v.Get(o.Key), o.Comment)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// RenderDefaultTOML renders a config file containing only defaults.
func RenderDefaultTOML() string {
	v := viper.New()
	applyDefaults(v)
	return RenderTOML(v)
}

func writeTOMLOption(b *strings.Builder, key string, value any, comment string) {
	if comment != "" {
		b.WriteString("# " + comment + "\n")
	}
	switch v := value.(type) {
	case string:
		b.WriteString(fmt.Sprintf("%s = %q\n\n", key, v))
	default:
		b.WriteString(fmt.Sprintf("%s = %v\n\n", key, v))
	}
}
