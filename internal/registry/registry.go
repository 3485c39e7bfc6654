// Package registry keeps track of known machine description files in a
// machines.toml file, so machines can be loaded by alias instead of path.
package registry

import (
	"bytes"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"enigma/internal/errors"
)

// Entry is one registered machine description file.
type Entry struct {
	// UID is the immutable identifier for this entry (never changes)
	UID string `toml:"uid"`

	// Name is the mutable human-friendly alias
	Name string `toml:"name"`

	// Path is the machine description file path
	Path string `toml:"path"`

	// AddedAt is when the machine was registered
	AddedAt time.Time `toml:"added_at"`
}

// Registry is the full machines.toml contents.
type Registry struct {
	UpdatedAt time.Time `toml:"updated_at"`
	Machines  []Entry   `toml:"machines"`
}

// Load reads a registry file. A missing file yields an empty registry.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Registry{}, nil
		}
		return nil, errors.Wrap(errors.PersistenceError,
			"machine registry could not be read", err)
	}

	var r Registry
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.PersistenceError,
			"machine registry is not valid TOML", err)
	}
	return &r, nil
}

// Save writes the registry to path.
func (r *Registry) Save(path string) error {
	r.UpdatedAt = time.Now().UTC()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(r); err != nil {
		return errors.Wrap(errors.PersistenceError,
			"machine registry could not be encoded", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(errors.PersistenceError,
			"machine registry could not be written", err)
	}
	return nil
}

// Add registers a machine description file under a unique alias.
func (r *Registry) Add(name, path string) (Entry, error) {
	if name == "" {
		return Entry{}, errors.New(errors.ConfigurationError,
			"machine alias must not be empty")
	}
	if _, ok := r.ByName(name); ok {
		return Entry{}, errors.Newf(errors.ConfigurationError,
			"machine alias %q is already registered; pick another name or remove it first", name)
	}

	entry := Entry{
		UID:     uuid.NewString(),
		Name:    name,
		Path:    path,
		AddedAt: time.Now().UTC(),
	}
	r.Machines = append(r.Machines, entry)
	return entry, nil
}

// Remove drops the entry with the given alias.
func (r *Registry) Remove(name string) error {
	for i, e := range r.Machines {
		if e.Name == name {
			r.Machines = append(r.Machines[:i], r.Machines[i+1:]...)
			return nil
		}
	}
	return errors.Newf(errors.ConfigurationError,
		"machine alias %q is not registered", name)
}

// ByName returns the entry with the given alias.
func (r *Registry) ByName(name string) (Entry, bool) {
	for _, e := range r.Machines {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
