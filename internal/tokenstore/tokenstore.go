// Package tokenstore keeps the session token handed out at registration in
// a small YAML file, the terminal equivalent of the browser's local
// storage entry "token".
package tokenstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jaiguruastro/astroremedy/internal/wizard"
	"gopkg.in/yaml.v3"
)

// ErrNoSession is returned by Load when nothing has been saved yet.
var ErrNoSession = errors.New("tokenstore: no saved session")

// Session is the on-disk record.
type Session struct {
	Token    string    `yaml:"token"`
	UserID   string    `yaml:"user_id,omitempty"`
	FullName string    `yaml:"full_name,omitempty"`
	SavedAt  time.Time `yaml:"saved_at"`
}

// Store reads and writes one session file.
type Store struct {
	path string
	now  func() time.Time
}

// New returns a store backed by path. The file is created on first Save.
func New(path string) *Store {
	return &Store{path: filepath.Clean(path), now: func() time.Time { return time.Now().UTC() }}
}

// DefaultPath is $XDG_CONFIG_HOME/astroremedy/session.yaml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("tokenstore: locate config dir: %w", err)
	}
	return filepath.Join(dir, "astroremedy", "session.yaml"), nil
}

func (s *Store) Path() string { return s.path }

// Save implements wizard.TokenSink. The previous session, if any, is
// replaced.
func (s *Store) Save(r wizard.Result) error {
	if r.Token == "" {
		return errors.New("tokenstore: empty token")
	}

	data, err := yaml.Marshal(Session{
		Token:    r.Token,
		UserID:   r.UserID,
		FullName: r.FullName,
		SavedAt:  s.now(),
	})
	if err != nil {
		return fmt.Errorf("tokenstore: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: ensure dir: %w", err)
	}

	// Write then rename so a crash never leaves half a token behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("tokenstore: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("tokenstore: replace: %w", err)
	}
	return nil
}

// Load returns the saved session.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("tokenstore: read: %w", err)
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("tokenstore: decode: %w", err)
	}
	if sess.Token == "" {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Clear removes the saved session. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: clear: %w", err)
	}
	return nil
}

var _ wizard.TokenSink = (*Store)(nil)
