package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// SetupProvider is the provider the first-run setup asks a key for.
const SetupProvider = "gemini"

// SetupKeyURL is where a free key for SetupProvider can be created.
const SetupKeyURL = "https://makersuite.google.com/app/apikey"

// ErrNoKeyEntered is returned when the user leaves the setup prompt empty.
var ErrNoKeyEntered = errors.New("no API key entered")

// AskFunc asks the user for a secret value.
type AskFunc func(ctx context.Context, message string) (string, error)

// EnsureCredential runs the first-run setup when no provider has a key: it asks for a
// SetupProvider key, appends it to the project's .env and applies it to cfg. It is a no-op
// when a credential already exists.
func EnsureCredential(ctx context.Context, cfg *Config, ask AskFunc) error {
	if cfg.HasCredential() {
		return nil
	}
	var envName string
	for _, p := range cfg.Providers {
		if p.Name == SetupProvider {
			envName = p.APIKeyEnv
		}
	}
	if envName == "" {
		return fmt.Errorf("config: no credential configured and %s is not in the provider list", SetupProvider)
	}

	key, err := ask(ctx, fmt.Sprintf("Paste your %s API key (get one at %s)", SetupProvider, SetupKeyURL))
	if err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrNoKeyEntered
	}
	if err := AppendEnv(filepath.Join(cfg.ProjectDir, EnvFile), envName, key); err != nil {
		return err
	}
	cfg.SetCredential(SetupProvider, key)
	return nil
}

// AppendEnv appends one KEY=value line to the .env file at path, creating it if needed.
func AppendEnv(path, key, value string) error {
	line, err := godotenv.Marshal(map[string]string{key: value})
	if err != nil {
		return fmt.Errorf("config: encode %s: %w", key, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	if _, err := f.WriteString("\n" + line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return f.Close()
}
