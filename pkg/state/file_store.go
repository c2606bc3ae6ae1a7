package state

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore keeps one YAML document per Ref under Root. The file path mirrors
// Ref.Identifier(), e.g. `<root>/modals/<window>/<session>.yaml`.
type FileStore[T any] struct {
	Root string
	mu   sync.Mutex
}

type fileRecord[T any] struct {
	Meta     Meta `yaml:"meta"`
	Snapshot T    `yaml:"snapshot"`
}

func NewFileStore[T any](root string) *FileStore[T] {
	return &FileStore[T]{Root: root}
}

// Path returns the file that backs ref.
func (s *FileStore[T]) Path(ref Ref) (string, error) {
	if s.Root == "" {
		return "", fmt.Errorf("state: file store root is required")
	}
	key, err := ref.Identifier()
	if err != nil {
		return "", err
	}
	return filepath.Join(s.Root, filepath.FromSlash(key)+".yaml"), nil
}

func (s *FileStore[T]) Load(ctx context.Context, ref Ref) (T, Meta, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, Meta{}, false, err
	}
	path, err := s.Path(ref)
	if err != nil {
		return zero, Meta{}, false, err
	}

	s.mu.Lock()
	raw, err := os.ReadFile(path)
	s.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		return zero, Meta{}, false, nil
	}
	if err != nil {
		return zero, Meta{}, false, fmt.Errorf("state: read %s: %w", path, err)
	}

	var record fileRecord[T]
	if err := yaml.Unmarshal(raw, &record); err != nil {
		return zero, Meta{}, false, fmt.Errorf("state: decode %s: %w", path, err)
	}
	return record.Snapshot, record.Meta, true, nil
}

// Save writes the record to a temporary file and renames it into place so
// readers never observe a partial document.
func (s *FileStore[T]) Save(ctx context.Context, ref Ref, snapshot T, meta Meta) (Meta, error) {
	if err := ctx.Err(); err != nil {
		return Meta{}, err
	}
	path, err := s.Path(ref)
	if err != nil {
		return Meta{}, err
	}
	raw, err := yaml.Marshal(fileRecord[T]{Meta: meta, Snapshot: snapshot})
	if err != nil {
		return Meta{}, fmt.Errorf("state: encode %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Meta{}, fmt.Errorf("state: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.yaml")
	if err != nil {
		return Meta{}, fmt.Errorf("state: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return Meta{}, fmt.Errorf("state: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return Meta{}, fmt.Errorf("state: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return Meta{}, fmt.Errorf("state: rename %s: %w", path, err)
	}
	return cloneMeta(meta), nil
}
