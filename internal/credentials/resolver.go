package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/paddlelog/garmin-fetch/internal/config"
)

const (
	EnvEmail    = "GARMIN_EMAIL"
	EnvPassword = "GARMIN_PASSWORD"

	opCommand = "op"
)

// ErrNotFound is returned when no source yields both an email and a password.
var ErrNotFound = errors.New(`Garmin credentials not found.
Set GARMIN_EMAIL and GARMIN_PASSWORD environment variables,
or configure 1Password in config.json`)

type Credentials struct {
	Email    string
	Password string
}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Email: %q, Password: <redacted>}", c.Email)
}

func (c Credentials) complete() bool {
	return c.Email != "" && c.Password != ""
}

// Runner runs an external command and returns its standard output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

type Resolver struct {
	Runner Runner
	Getenv func(string) string
	Logger *zap.Logger
}

type source struct {
	name    string
	resolve func(context.Context) (Credentials, bool)
}

// Resolve tries 1Password first (when configured) and then the environment.
func (r *Resolver) Resolve(ctx context.Context, cfg config.Config) (Credentials, error) {
	sources := []source{
		{name: "1password", resolve: func(ctx context.Context) (Credentials, bool) {
			return r.fromOnePassword(ctx, cfg.Garmin.OnePassword)
		}},
		{name: "environment", resolve: r.fromEnv},
	}
	for _, s := range sources {
		if creds, ok := s.resolve(ctx); ok {
			r.logger().Debug("resolved garmin credentials", zap.String("source", s.name))
			return creds, nil
		}
	}
	return Credentials{}, ErrNotFound
}

// SecretReference builds an op://vault/item/field reference.
func SecretReference(vault, item, field string) string {
	return fmt.Sprintf("op://%s/%s/%s", vault, item, field)
}

func (r *Resolver) fromOnePassword(ctx context.Context, op config.OnePassword) (Credentials, bool) {
	if !op.Enabled() {
		return Credentials{}, false
	}
	email, err := r.readSecret(ctx, op.Account, SecretReference(op.Vault(), op.Item, op.EmailField()))
	if err != nil {
		r.logger().Debug("1password lookup failed", zap.String("field", op.EmailField()), zap.Error(err))
		return Credentials{}, false
	}
	password, err := r.readSecret(ctx, op.Account, SecretReference(op.Vault(), op.Item, op.PasswordField()))
	if err != nil {
		r.logger().Debug("1password lookup failed", zap.String("field", op.PasswordField()), zap.Error(err))
		return Credentials{}, false
	}
	creds := Credentials{Email: email, Password: password}
	return creds, creds.complete()
}

func (r *Resolver) readSecret(ctx context.Context, account, ref string) (string, error) {
	runner := r.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	out, err := runner.Output(ctx, opCommand, "read", ref, "--account", account)
	if err != nil {
		return "", fmt.Errorf("op read %s: %w", ref, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *Resolver) fromEnv(context.Context) (Credentials, bool) {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	creds := Credentials{Email: getenv(EnvEmail), Password: getenv(EnvPassword)}
	return creds, creds.complete()
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
