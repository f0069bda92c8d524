package log

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional log configuration file format.
type Config struct {
	DefaultLevel string `yaml:"defaultLevel"`
	// Filters holds zapfilter rules, e.g. "debug:sql,repository.* info:*"
	Filters string `yaml:"filters"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ret Config
	if err := yaml.Unmarshal(data, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}
