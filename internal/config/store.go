package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/ini.v1"
)

var (
	// ErrHomeUnavailable indicates the home directory could not be resolved
	ErrHomeUnavailable = errors.New("home directory unavailable")
	// ErrNotFound indicates the config file does not exist
	ErrNotFound = errors.New("config file not found")
	// ErrPermission indicates the config file is not both readable and writable
	ErrPermission = errors.New("config file permission denied")
	// ErrMissingSection indicates the requested section is absent
	ErrMissingSection = errors.New("config section missing")
	// ErrMissingKey indicates the requested key is absent from its section
	ErrMissingKey = errors.New("config key missing")
)

// Store reads and writes INI-style key-value sections in config files
// under the user's home directory.
type Store struct {
	home   string
	logger *slog.Logger
}

// NewStore creates a config store. When home is empty the HOME
// environment variable is consulted on each path resolution.
func NewStore(home string, logger *slog.Logger) *Store {
	return &Store{
		home:   home,
		logger: logger,
	}
}

// ResolvePath joins the home directory with the given config file name
func (s *Store) ResolvePath(filename string) (string, error) {
	home := s.home
	if home == "" {
		home = os.Getenv("HOME")
	}
	if home == "" {
		return "", ErrHomeUnavailable
	}
	abs, err := filepath.Abs(filepath.Join(home, filename))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return abs, nil
}

// ReadSection reads all key-value pairs from the named section.
// The file must exist and be both readable and writable.
func (s *Store) ReadSection(path, section string) (map[string]string, error) {
	cfg, err := s.load(path)
	if err != nil {
		return nil, err
	}

	sec, err := cfg.GetSection(section)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSection, section)
	}

	return sec.KeysHash(), nil
}

// ReadKey reads a single value from the named section
func (s *Store) ReadKey(path, section, key string) (string, error) {
	cfg, err := s.load(path)
	if err != nil {
		return "", err
	}

	sec, err := cfg.GetSection(section)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMissingSection, section)
	}

	if !sec.HasKey(key) {
		return "", fmt.Errorf("%w: %s.%s", ErrMissingKey, section, key)
	}

	return sec.Key(key).String(), nil
}

// WriteSection writes the given key-value pairs as the named section,
// replacing the entire file contents. This is a deliberate last-write-wins
// save: sections not passed in are discarded.
func (s *Store) WriteSection(path, section string, values map[string]string) error {
	cfg := ini.Empty()

	sec, err := cfg.NewSection(section)
	if err != nil {
		return fmt.Errorf("failed to create section %q: %w", section, err)
	}

	// Deterministic key order keeps the file diffable between saves
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := sec.NewKey(k, values[k]); err != nil {
			return fmt.Errorf("failed to set key %q: %w", k, err)
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// Write with 0600 permissions (read/write for owner only)
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrPermission, path)
		}
		return fmt.Errorf("failed to write config file: %w", err)
	}

	s.logger.Debug("config section written",
		"path", path,
		"section", section,
		"keys", len(values))

	return nil
}

// Remove deletes a config file. Removing a file that does not exist is
// not an error.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}
	return nil
}

// load opens the file for read-write to enforce the access gate, then
// parses it as INI
func (s *Store) load(path string) (*ini.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		case os.IsPermission(err):
			return nil, fmt.Errorf("%w: %s", ErrPermission, path)
		default:
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
