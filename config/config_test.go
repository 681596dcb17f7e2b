package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(vals map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vals[key]
		return v, ok
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir, "", envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "README.md", cfg.Output)
	assert.Equal(t, "default", cfg.Style)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.AutoApprove)
	require.Len(t, cfg.Providers, 3)
	for i, name := range DefaultProviders {
		assert.Equal(t, name, cfg.Providers[i].Name)
	}
	assert.False(t, cfg.HasCredential())
}

func TestLoadEnvironmentWinsOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EnvFile), "GEMINI_API_KEY=from-dotenv\nOPENAI_API_KEY=dot-openai\nGEMINI_MODEL=gemini-2.0-flash\n")

	cfg, err := Load(dir, "", envMap(map[string]string{
		"GEMINI_API_KEY": "from-env",
		"CI":             "true",
		"EDITOR":         "vim",
	}))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Providers[0].APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Providers[0].Model)
	assert.Equal(t, "dot-openai", cfg.Providers[1].APIKey)
	assert.Empty(t, cfg.Providers[2].APIKey)
	assert.True(t, cfg.AutoApprove)
	assert.Equal(t, "vim", cfg.Editor)
}

func TestLoadFileControlsOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DefaultFile), `
providers:
  - name: DeepSeek
    model: deepseek-reasoner
  - name: openai
    api_key_env: WORK_OPENAI_KEY
    base_url: https://llm.internal/v1
style: zen
output: docs/README.md
timeout: 45s
ignore:
  - vendor
`)
	cfg, err := Load(dir, "", envMap(map[string]string{"WORK_OPENAI_KEY": "k"}))
	require.NoError(t, err)

	require.Len(t, cfg.Providers, 2)
	assert.Equal(t, "deepseek", cfg.Providers[0].Name)
	assert.Equal(t, "deepseek-reasoner", cfg.Providers[0].Model)
	assert.Equal(t, "DEEPSEEK_API_KEY", cfg.Providers[0].APIKeyEnv)
	assert.Equal(t, "openai", cfg.Providers[1].Name)
	assert.Equal(t, "k", cfg.Providers[1].APIKey)
	assert.Equal(t, "https://llm.internal/v1", cfg.Providers[1].BaseURL)
	assert.Equal(t, "zen", cfg.Style)
	assert.Equal(t, "docs/README.md", cfg.Output)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"vendor"}, cfg.Ignore)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, filepath.Join(dir, "missing.yaml"), envMap(nil))
	assert.Error(t, err)

	path := filepath.Join(dir, "dup.yaml")
	writeFile(t, path, "providers:\n  - name: openai\n  - name: OpenAI\n")
	_, err = Load(dir, path, envMap(nil))
	assert.ErrorContains(t, err, "listed twice")

	writeFile(t, path, "timeout: soon\n")
	_, err = Load(dir, path, envMap(nil))
	assert.ErrorContains(t, err, "invalid timeout")
}

func TestEnsureCredentialWritesDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EnvFile), "OTHER=1\n")
	cfg, err := Load(dir, "", envMap(nil))
	require.NoError(t, err)

	asked := 0
	err = EnsureCredential(context.Background(), cfg, func(_ context.Context, msg string) (string, error) {
		asked++
		assert.Contains(t, msg, SetupKeyURL)
		return "  new-key \n", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, asked)
	assert.Equal(t, "new-key", cfg.Providers[0].APIKey)

	vals, err := godotenv.Read(filepath.Join(dir, EnvFile))
	require.NoError(t, err)
	assert.Equal(t, "new-key", vals["GEMINI_API_KEY"])
	assert.Equal(t, "1", vals["OTHER"])

	// A second run finds the key and does not ask again.
	again, err := Load(dir, "", envMap(nil))
	require.NoError(t, err)
	require.NoError(t, EnsureCredential(context.Background(), again, func(context.Context, string) (string, error) {
		t.Fatal("should not ask")
		return "", nil
	}))
}

func TestEnsureCredentialEmptyKey(t *testing.T) {
	cfg, err := Load(t.TempDir(), "", envMap(nil))
	require.NoError(t, err)
	err = EnsureCredential(context.Background(), cfg, func(context.Context, string) (string, error) { return " ", nil })
	assert.ErrorIs(t, err, ErrNoKeyEntered)
}
