package session

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultCredentialsPath returns the credentials file location used by the CLI,
// ~/.ai-platform/credentials.yaml.
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "[DefaultCredentialsPath] resolving home directory")
	}
	return filepath.Join(home, ".ai-platform", "credentials.yaml"), nil
}

// FileStore is a Store persisted to a yaml credentials file so CLI sessions
// survive between invocations. The in-memory copy is authoritative during a
// run; persistence failures are logged and do not fail the session operation.
type FileStore struct {
	path    string
	mu      sync.Mutex
	tokens  Tokens
	onClear []func()
}

var _ Store = (*FileStore)(nil)

// NewFileStore loads any previously saved credentials from path. A missing
// file is a logged-out session, not an error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[NewFileStore] reading %s", path)
	}
	if err := yaml.Unmarshal(data, &s.tokens); err != nil {
		return nil, errors.Wrapf(err, "[NewFileStore] parsing %s", path)
	}
	return s, nil
}

func (s *FileStore) Get() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

func (s *FileStore) Set(t Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
	s.persistLocked()
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	s.tokens = Tokens{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Err(err).Str("path", s.path).Msg("Failed to remove credentials file")
	}
	callbacks := make([]func(), len(s.onClear))
	copy(callbacks, s.onClear)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func (s *FileStore) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

func (s *FileStore) persistLocked() {
	data, err := yaml.Marshal(s.tokens)
	if err != nil {
		log.Err(err).Msg("Failed to encode credentials")
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		log.Err(err).Str("path", s.path).Msg("Failed to create credentials directory")
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		log.Err(err).Str("path", s.path).Msg("Failed to write credentials file")
	}
}
