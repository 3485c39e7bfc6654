package spec

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"enigma/internal/errors"
)

// Load reads and validates a machine description file. The format is
// chosen by extension: .yaml/.yml, .toml or .json. Loading is atomic;
// on any failure no partial specification escapes.
func Load(path string) (*MachineSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError,
			"machine description could not be read; check the path and permissions", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a machine description from raw bytes in the format named
// by ext and validates it structurally.
func Parse(data []byte, ext string) (*MachineSpec, error) {
	var s MachineSpec

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(errors.StructuralError,
				"machine description is not valid YAML", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(errors.StructuralError,
				"machine description is not valid TOML", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(errors.StructuralError,
				"machine description is not valid JSON", err)
		}
	default:
		return nil, errors.Newf(errors.StructuralError,
			"unsupported machine description format %q; use .yaml, .toml or .json", ext)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
