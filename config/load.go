package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse reads a YAML profile. Keys absent from data keep their Default
// values. Unknown keys are an error.
func Parse(data []byte) (Profile, error) {
	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("config: parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Load reads a YAML profile from path.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is an operator-supplied profile
	if err != nil {
		return Profile{}, fmt.Errorf("config: read profile: %w", err)
	}
	return Parse(data)
}

// Marshal encodes p as YAML.
func Marshal(p Profile) ([]byte, error) {
	return yaml.Marshal(p)
}
