// Package manifest reads the two files that sit outside the analysis
// core: the project's package.json (dependency names the linker's
// unused-dependency analysis needs) and modsweep.toml (this tool's own
// config file).
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is modsweep.toml's shape.
type Config struct {
	Analysis struct {
		// Format is the default report format ("compact", "clean", or
		// "json"); a CLI --format flag overrides it.
		Format string `toml:"format"`

		// Analyze holds a namespace selection ("types", "values", or
		// "all"). It is decoded from the file, but cmd/modsweep does not
		// read it: --analyze, which defaults to "all", alone selects the
		// namespaces the report covers.
		Analyze string `toml:"analyze"`

		// Ignore lists extra glob patterns merged with .customsignore.
		Ignore []string `toml:"ignore"`
	} `toml:"analysis"`
}

// DefaultConfig returns the config modsweep runs with when no modsweep.toml
// is present.
func DefaultConfig() *Config {
	c := &Config{}
	c.Analysis.Format = "compact"
	c.Analysis.Analyze = "all"

	return c
}

// LoadConfig reads modsweep.toml from projectRoot. A missing file is not an
// error: it yields DefaultConfig() — a missing config file only ever
// supplements, never gates, a run.
func LoadConfig(projectRoot string) (*Config, error) {
	path := filepath.Join(projectRoot, "modsweep.toml")

	c := DefaultConfig()

	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return nil, fmt.Errorf("manifest: loading %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("manifest: %s: unrecognized keys: %v", path, undecoded)
	}

	return c, nil
}
