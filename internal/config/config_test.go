package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadReturnsEmptyWhenNoFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := Load([]string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Path != "" || cfg.Garmin.OnePassword.Enabled() {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadUsesFirstExistingPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first", "config.json")
	second := filepath.Join(dir, "second", "config.json")
	writeFile(t, second, `{"garmin":{"onepassword":{"account":"second","item":"garmin"}}}`)

	cfg, err := Load([]string{first, second})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Path != second || cfg.Garmin.OnePassword.Account != "second" {
		t.Fatalf("expected second config, got %+v", cfg)
	}

	writeFile(t, first, `{"garmin":{"onepassword":{"account":"first","item":"garmin"}}}`)
	cfg, err = Load([]string{first, second})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Path != first || cfg.Garmin.OnePassword.Account != "first" {
		t.Fatalf("expected first config to win, got %+v", cfg)
	}
}

func TestLoadMalformedFileIsParseError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"garmin": `)

	_, err := Load([]string{path})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestOnePasswordDefaults(t *testing.T) {
	t.Parallel()

	var op OnePassword
	if op.Vault() != "Private" || op.EmailField() != "username" || op.PasswordField() != "password" {
		t.Fatalf("unexpected defaults: %s %s %s", op.Vault(), op.EmailField(), op.PasswordField())
	}
	if op.Enabled() {
		t.Fatalf("empty section must not be enabled")
	}

	op = OnePassword{Account: "my", Item: "Garmin", VaultName: "Sports", EmailFieldKey: "email", PasswordKey: "pw"}
	if !op.Enabled() || op.Vault() != "Sports" || op.EmailField() != "email" || op.PasswordField() != "pw" {
		t.Fatalf("unexpected configured values: %+v", op)
	}
	if (OnePassword{Account: "my"}).Enabled() {
		t.Fatalf("account without item must not be enabled")
	}
	if !(OnePassword{Account: " ", Item: " "}).Enabled() {
		t.Fatalf("whitespace values are set and must enable 1Password")
	}
}

func TestLoadFileMissingIsError(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}
