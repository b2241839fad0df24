// Package config resolves server selectors (full URLs, nicknames, and
// the built-in local/cloud names) to base URLs.
//
// Nicknames live in ~/.config/spacelens/config.yaml:
//
//	servers:
//	  - nickname: staging
//	    url: https://staging.example.com
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/spacelens/spacelens/internal/errs"
)

const (
	localURL = "http://localhost:3000"
	cloudURL = "https://maincloud.spacetimedb.com"
)

// Server is one nickname entry in the config file.
type Server struct {
	Nickname string `yaml:"nickname"`
	URL      string `yaml:"url"`
}

// File is the on-disk config document.
type File struct {
	Servers []Server `yaml:"servers"`
}

// DefaultPath returns the config file location under the user's home.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "spacelens", "config.yaml"), nil
}

// Load reads the config file at path. A missing file is not an error; it
// loads as an empty config so built-in names still resolve.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{}, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "read config file", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "parse config file", err)
	}
	return &f, nil
}

// Resolve maps a server selector to a base URL. Full http(s) URLs pass
// through; nicknames from the config file come next; then the built-in
// names; anything else is treated as a plain host.
func (f *File) Resolve(server string) string {
	if strings.HasPrefix(server, "http://") || strings.HasPrefix(server, "https://") {
		return server
	}
	for _, s := range f.Servers {
		if s.Nickname == server {
			return s.URL
		}
	}
	switch server {
	case "local":
		return localURL
	case "cloud", "maincloud":
		return cloudURL
	}
	return "http://" + server
}

// ResolveServer loads the default config file and resolves server
// against it.
func ResolveServer(server string) (string, error) {
	path, err := DefaultPath()
	if err != nil {
		// No home directory; built-in names still work.
		return (&File{}).Resolve(server), nil
	}
	f, err := Load(path)
	if err != nil {
		return "", err
	}
	return f.Resolve(server), nil
}
