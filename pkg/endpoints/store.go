package endpoints

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentstation/endpointctl/pkg/errors"
)

// configExt is the file extension endpoint configs are stored with.
const configExt = ".json"

// Store loads endpoint configurations from a directory of JSON files.
// A config for endpoint "foo" may live in either foo.json or
// foo-connector.json; the first match wins.
type Store struct {
	dir string
}

// NewStore creates a store backed by the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Candidates returns the filenames probed for an endpoint name, in order.
func (s *Store) Candidates(name string) []string {
	return []string{
		name + configExt,
		name + "-connector" + configExt,
	}
}

// Load reads and parses the configuration for the named endpoint.
// It returns an error satisfying errors.IsNotFound when no candidate
// file exists, and a parse or IO error when a candidate is unreadable.
func (s *Store) Load(name string) (*Config, error) {
	for _, filename := range s.Candidates(name) {
		path := filepath.Join(s.dir, filename)

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.WrapIO("read", path, err)
		}

		cfg, err := ParseConfig(data)
		if err != nil {
			return nil, errors.NewParseError("json", path, "invalid endpoint config", err)
		}
		return cfg, nil
	}

	return nil, errors.NewNotFoundError("endpoint config", name)
}

// Available returns the stems of all config files in the store's
// directory, sorted alphabetically with duplicates removed. A missing
// directory yields an empty list rather than an error.
func (s *Store) Available() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var stems []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), configExt) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), configExt)
		if _, ok := seen[stem]; ok {
			continue
		}
		seen[stem] = struct{}{}
		stems = append(stems, stem)
	}

	sort.Strings(stems)
	return stems
}

// Exists reports whether a config file for the named endpoint is present.
func (s *Store) Exists(name string) bool {
	for _, filename := range s.Candidates(name) {
		if _, err := os.Stat(filepath.Join(s.dir, filename)); err == nil {
			return true
		}
	}
	return false
}
