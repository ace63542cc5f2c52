package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dump renders cfg as YAML in the layout the file loader accepts.
// Durations are written in Go notation ("5s").
func Dump(cfg *ServerConfig) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("dump config: %w", err)
	}
	return out, nil
}
