package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stackshift-net/stackshift/pkg/model"
	"github.com/stackshift-net/stackshift/pkg/util"
)

// FileStore keeps one JSON file per stack under a directory.
type FileStore struct {
	dir string
}

// DefaultSessionDir returns the default stack session directory.
func DefaultSessionDir() string {
	return filepath.Join(os.TempDir(), "stackshift")
}

// NewFileStore creates a file-backed store rooted at dir. An empty dir
// selects the default location.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultSessionDir()
	}
	return &FileStore{dir: dir}
}

// Save writes the stack as <dir>/<name>.json, creating the directory as
// needed.
func (s *FileStore) Save(_ context.Context, st *model.Stack) error {
	if st.Name == "" {
		return util.NewMissingFieldError("stack name")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding stack %s: %w", st.Name, err)
	}

	path := s.path(st.Name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing stack session: %w", err)
	}
	util.Debugf("saved stack session %s", path)
	return nil
}

// Load reads a previously saved stack.
func (s *FileStore) Load(_ context.Context, name string) (*model.Stack, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("stack %q: %w", name, util.ErrStackNotFound)
		}
		return nil, err
	}

	var st model.Stack
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decoding stack %s: %w", name, err)
	}
	return &st, nil
}

// List returns the names of all saved stacks.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	return names, nil
}

// Delete removes a saved stack. Deleting a missing stack is not an error.
func (s *FileStore) Delete(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

var _ Store = (*FileStore)(nil)
