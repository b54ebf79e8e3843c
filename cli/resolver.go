package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The YAML document is converted as follows:
//   - Top-level keys map to flag names; hyphens and underscores in key
//     names are interchangeable (e.g., "log_level" matches --log-level)
//   - Nested mappings are flattened with a hyphen separator, so a "log"
//     block with a "level" key also matches --log-level
//   - Numbers and booleans are converted to the strings Kong expects
//
// Example config file:
//
//	log:
//	  level: debug
//	  format: json
//	  pretty: true
//	max-steps: 2000
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		// Empty or malformed file: resolve nothing and let Kong use
		// defaults.
		return config{}, nil
	}

	flat := make(config)
	flatten("", doc, flat)

	return flat, nil
}

// flatten walks nested mappings, joining keys with hyphens, and stores
// scalar leaves in out as the strings Kong expects.
func flatten(prefix string, value any, out config) {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			name := key
			if prefix != "" {
				name = prefix + "-" + key
			}

			flatten(name, child, out)
		}

	case map[any]any:
		for key, child := range v {
			name := fmt.Sprint(key)
			if prefix != "" {
				name = prefix + "-" + name
			}

			flatten(name, child, out)
		}

	case int64:
		out[prefix] = strconv.FormatInt(v, 10)

	case uint64:
		out[prefix] = strconv.FormatUint(v, 10)

	case float64:
		out[prefix] = strconv.FormatFloat(v, 'f', -1, 64)

	default:
		if prefix != "" {
			out[prefix] = v
		}
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// The config was already parsed successfully.
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys may use
	// underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found: let Kong use defaults.
	return nil, nil
}
