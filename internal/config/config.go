package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	DefaultVault         = "Private"
	DefaultEmailField    = "username"
	DefaultPasswordField = "password"
)

// ErrParse marks a config file that exists but cannot be read or decoded.
var ErrParse = errors.New("parse config")

type Config struct {
	Garmin Garmin `json:"garmin"`

	// Path is the file the config was read from, empty when none was found.
	Path string `json:"-"`
}

type Garmin struct {
	OnePassword OnePassword `json:"onepassword"`
}

type OnePassword struct {
	Account       string `json:"account,omitempty"`
	Item          string `json:"item,omitempty"`
	VaultName     string `json:"vault,omitempty"`
	EmailFieldKey string `json:"email_field,omitempty"`
	PasswordKey   string `json:"password_field,omitempty"`
}

// Enabled reports whether both account and item are set.
func (o OnePassword) Enabled() bool {
	return o.Account != "" && o.Item != ""
}

func (o OnePassword) Vault() string {
	return withDefault(o.VaultName, DefaultVault)
}

func (o OnePassword) EmailField() string {
	return withDefault(o.EmailFieldKey, DefaultEmailField)
}

func (o OnePassword) PasswordField() string {
	return withDefault(o.PasswordKey, DefaultPasswordField)
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Load parses the first existing file in paths. A missing file is skipped;
// when none exists an empty Config is returned.
func Load(paths []string) (Config, error) {
	for _, path := range paths {
		cfg, err := readFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	return Config{}, nil
}

// LoadFile parses exactly one file; a missing file is an error.
func LoadFile(path string) (Config, error) {
	cfg, err := readFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config file %s does not exist", path)
	}
	return cfg, err
}

func readFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrParse, path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrParse, path, err)
	}
	cfg.Path = path
	return cfg, nil
}
