// Package store persists serialized window metrics between application
// runs. The file format is a small YAML map from window name to the
// five-field geometry string; interpreting those strings is the metrics
// package's job, so a corrupted entry never fails the whole store.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// state is the on-disk document.
type state struct {
	Windows map[string]string `yaml:"windows"`
}

// Store reads and writes the persisted geometry file.
type Store struct {
	path  string
	state state
}

// DefaultPath returns the standard location of the geometry state file.
func DefaultPath() (string, error) {
	path, err := xdg.StateFile(filepath.Join("winkeep", "state.yaml"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve state path: %w", err)
	}
	return path, nil
}

// Open loads the store from the standard location.
func Open() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath loads the store from path. A missing file yields an empty
// store; a file that is not valid YAML is an error.
func OpenPath(path string) (*Store, error) {
	s := &Store{
		path:  path,
		state: state{Windows: map[string]string{}},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	if s.state.Windows == nil {
		s.state.Windows = map[string]string{}
	}
	return s, nil
}

// Get returns the serialized metrics stored under name.
func (s *Store) Get(name string) (string, bool) {
	v, ok := s.state.Windows[name]
	return v, ok
}

// Set stores serialized metrics under name. The caller persists with Save.
func (s *Store) Set(name, serialized string) {
	s.state.Windows[name] = serialized
}

// Delete removes the entry stored under name.
func (s *Store) Delete(name string) {
	delete(s.state.Windows, name)
}

// Names returns the stored window names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.state.Windows))
	for name := range s.state.Windows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Save writes the store back to disk, creating parent directories as
// needed.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := yaml.Marshal(&s.state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", s.path, err)
	}
	return nil
}
