package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads flag defaults from
// a YAML mapping. Keys may use either hyphens or underscores, so both of
//
//	log-level: debug
//	log_format: json
//
// apply to the --log-level and --log-format flags. Command-line flags
// override config file values. An unreadable or malformed file yields an
// empty configuration rather than an error, so a stale config never blocks
// the CLI.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return config{}, nil
	}

	cfg := make(config, len(raw))
	for key, value := range raw {
		cfg[key] = flagValue(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found: let Kong use defaults.
	return nil, nil
}

// flagValue converts a decoded YAML value into a form Kong can parse.
// Kong requires numbers as strings.
func flagValue(value any) any {
	switch num := value.(type) {
	case int:
		return strconv.Itoa(num)
	case int64:
		return strconv.FormatInt(num, 10)
	case uint64:
		return strconv.FormatUint(num, 10)
	case float64:
		return strconv.FormatFloat(num, 'f', -1, 64)
	default:
		return value
	}
}
