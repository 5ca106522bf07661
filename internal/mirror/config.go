package mirror

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile maps one named credential profile to its destination bucket.
type Profile struct {
	Name   string `yaml:"name"`
	Bucket string `yaml:"bucket"`
}

// Config holds the mirror destinations. Profiles are synced in order;
// each one independently, a failure in one does not block the rest.
type Config struct {
	Region   string    `yaml:"region"`
	Profiles []Profile `yaml:"profiles"`
}

// DefaultConfig returns the built-in destination set.
func DefaultConfig() Config {
	return Config{
		Region: "us-east-2",
		Profiles: []Profile{
			{Name: "production", Bucket: "boost.org.v2"},
			{Name: "stage", Bucket: "stage.boost.org.v2"},
			{Name: "revsys", Bucket: "boost.revsys.dev"},
			{Name: "cppal-dev", Bucket: "boost.org-cppal-dev-v2"},
		},
	}
}

// LoadConfig reads a YAML profile config, falling back to the defaults
// when the file does not exist.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read mirror config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse mirror config %s: %w", path, err)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultConfig().Region
	}
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = DefaultConfig().Profiles
	}
	return cfg, nil
}
