// Package config loads mzfeat.yaml, an optional file supplying default
// CLI flag values so repeated `extract` invocations in a project don't
// need to repeat --output/--sep/--timeout on every call. Flags passed
// on the command line always win over the file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration unmarshals a YAML scalar like "30s" into a time.Duration;
// plain time.Duration is an int64 alias and yaml.v3 has no built-in
// string-to-duration coercion.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the subset of extract's flags that make sense as
// project-wide defaults.
type Config struct {
	Output  string   `yaml:"output"`
	Sep     string   `yaml:"sep"`
	NoGraph bool     `yaml:"no_graph"`
	Timeout Duration `yaml:"timeout"`
}

// Default returns the built-in flag defaults used when no config file
// is present and no flag overrides them.
func Default() Config {
	return Config{
		Output:  "pp",
		Sep:     ",",
		NoGraph: false,
		Timeout: Duration(2 * time.Second),
	}
}

// Load reads path and merges it on top of Default. A missing file is
// not an error — it just means the built-in defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Discover looks for mzfeat.yaml in dir and loads it, falling back to
// Default when absent.
func Discover(dir string) (Config, error) {
	if dir == "" {
		return Default(), nil
	}
	return Load(dir + string(os.PathSeparator) + "mzfeat.yaml")
}
