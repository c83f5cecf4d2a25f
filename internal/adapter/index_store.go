package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "keylens.dev/pkg/keylens/internal/model"
)

// indexFileName is the index file written inside the output directory.
const indexFileName = "index.yaml"

// KeyIndexStore persists scan results so later commands can reuse them.
type KeyIndexStore interface {
	SaveIndex(dir m.Path, index m.Index) error
	LoadIndex(dir m.Path) (m.Index, error)
}

// LocalKeyIndexStore stores the index as a YAML file on disk.
type LocalKeyIndexStore struct{}

// NewLocalKeyIndexStore constructs a LocalKeyIndexStore.
func NewLocalKeyIndexStore() *LocalKeyIndexStore {
	return &LocalKeyIndexStore{}
}

// SaveIndex writes the index to dir/index.yaml, creating dir if needed.
func (s *LocalKeyIndexStore) SaveIndex(dir m.Path, index m.Index) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	path := filepath.Join(string(dir), indexFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return nil
}

// LoadIndex reads dir/index.yaml and rejects unknown format versions.
func (s *LocalKeyIndexStore) LoadIndex(dir m.Path) (m.Index, error) {
	path := filepath.Join(string(dir), indexFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return m.Index{}, err
	}

	var index m.Index
	if err := yaml.Unmarshal(data, &index); err != nil {
		return m.Index{}, fmt.Errorf("parse index %s: %w", path, err)
	}

	if index.Version != m.IndexVersion {
		return m.Index{}, fmt.Errorf("index %s has version %d, want %d", path, index.Version, m.IndexVersion)
	}

	return index, nil
}
