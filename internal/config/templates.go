package config

import (
	"errors"
	"fmt"
	"os"
)

var ErrTemplateExists = errors.New("config: template target already exists")

// cadctlTemplate is the annotated starter config emitted by configgen. Every
// key mirrors a fileConfig field and ships with its default value.
const cadctlTemplate = `# cadctl.toml: CAD automation layer configuration.
# Values below are the defaults; delete a key to keep its default.

# Directory where saved documents land. Created on demand.
output_dir = "out"

# Name prefix for auto-derived reference planes ("HelperTop", "HelperLeft", ...).
helper_plane_prefix = "Helper"

# Overlap beyond this many millimetres on every axis counts as interference
# and rolls the mate back.
interference_tolerance_mm = 0.001

# Log verbosity: trace, debug, info, warn, error.
log_level = "info"
`

// Template returns the annotated cadctl.toml starter text.
func Template() string {
	return cadctlTemplate
}

// WriteTemplate writes the starter config to path. Refuses to clobber an
// existing file unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrTemplateExists, path)
		}
	}
	if err := os.WriteFile(path, []byte(cadctlTemplate), 0o644); err != nil {
		return fmt.Errorf("write config template: %w", err)
	}
	return nil
}
