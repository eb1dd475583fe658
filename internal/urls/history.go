package urls

import (
	"strings"

	"github.com/ghterm/ghterm/internal/config"
)

const (
	// ConfigFile is the url history file name under the home directory
	ConfigFile = ".githubconfigurl"
	// ConfigSection is the url history section name
	ConfigSection = "url"
	// KeyList is the key holding the serialized url list
	KeyList = "url_list"

	// BaseURL is the prefix stripped from entries for terminal display
	BaseURL = "https://github.com/"
)

// History persists the last set of urls the user has seen, so a url
// can be reopened by index.
type History struct {
	store *config.Store
	max   int
}

// New creates a url history capped at max entries per save
func New(store *config.Store, max int) *History {
	return &History{
		store: store,
		max:   max,
	}
}

// Load reads the saved url list. When viewInBrowser is false the
// https://github.com/ prefix is stripped from every entry so short
// paths print in the terminal. Store errors (missing file, permission)
// propagate; callers fall back to an empty history.
func (h *History) Load(viewInBrowser bool) ([]string, error) {
	path, err := h.store.ResolvePath(ConfigFile)
	if err != nil {
		return nil, err
	}

	raw, err := h.store.ReadKey(path, ConfigSection, KeyList)
	if err != nil {
		return nil, err
	}

	// The stored value is a bracketed single-quoted list literal,
	// e.g. ['https://github.com/a/b', 'https://github.com/c/d']
	cleaned := strings.TrimSpace(raw)
	for _, decoration := range []string{"[", "]", "'"} {
		cleaned = strings.ReplaceAll(cleaned, decoration, "")
	}
	if !viewInBrowser {
		cleaned = strings.ReplaceAll(cleaned, BaseURL, "")
	}
	if cleaned == "" {
		return nil, nil
	}

	return strings.Split(cleaned, ", "), nil
}

// Save writes the url list, completely replacing the history file.
// Lists longer than the cap are truncated to the most recent entries
// (most recent last).
func (h *History) Save(urls []string) error {
	path, err := h.store.ResolvePath(ConfigFile)
	if err != nil {
		return err
	}

	if h.max > 0 && len(urls) > h.max {
		urls = urls[len(urls)-h.max:]
	}

	quoted := make([]string, len(urls))
	for i, u := range urls {
		quoted[i] = "'" + u + "'"
	}
	value := "[" + strings.Join(quoted, ", ") + "]"

	return h.store.WriteSection(path, ConfigSection, map[string]string{KeyList: value})
}
