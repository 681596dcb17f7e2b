// Package config gathers everything readme-genie reads from the outside world (YAML file,
// .env, process environment) into one Config value built at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is the optional YAML config looked up in the project root.
	DefaultFile = ".readme-genie.yaml"
	// EnvFile holds provider keys saved by the first-run setup.
	EnvFile = ".env"
)

// DefaultProviders is the fallback order used when the config file does not set one.
var DefaultProviders = []string{"gemini", "openai", "deepseek"}

// ProviderConfig is one entry of the provider chain.
type ProviderConfig struct {
	Name    string `yaml:"name"`
	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	// APIKeyEnv overrides the credential variable, <NAME>_API_KEY by default.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
	// APIKey is resolved from the environment; never read from the file.
	APIKey string `yaml:"-"`
}

// FileConfig models .readme-genie.yaml.
type FileConfig struct {
	Providers []ProviderConfig `yaml:"providers"`
	Style     string           `yaml:"style,omitempty"`
	Output    string           `yaml:"output,omitempty"`
	Timeout   string           `yaml:"timeout,omitempty"`
	Ignore    []string         `yaml:"ignore,omitempty"`
}

// Config is the resolved runtime configuration.
type Config struct {
	ProjectDir  string
	Providers   []ProviderConfig
	Style       string
	Output      string
	Timeout     time.Duration
	Ignore      []string
	AutoApprove bool
	Editor      string
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// Load resolves configuration for projectDir. An empty configPath means DefaultFile, which
// may be absent; an explicit configPath must exist. lookup defaults to os.LookupEnv.
// Values from projectDir/.env fill in variables the environment does not already define.
func Load(projectDir, configPath string, lookup LookupFunc) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve project dir: %w", err)
	}

	dotenv, err := readDotEnv(filepath.Join(abs, EnvFile))
	if err != nil {
		return nil, err
	}
	env := func(key string) string {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}

	required := configPath != ""
	if !required {
		configPath = filepath.Join(abs, DefaultFile)
	}
	fc, err := readFile(configPath, required)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ProjectDir:  abs,
		Style:       "default",
		Output:      "README.md",
		Timeout:     30 * time.Second,
		Ignore:      fc.Ignore,
		AutoApprove: env("CI") == "true",
		Editor:      firstNonEmpty(env("VISUAL"), env("EDITOR")),
	}
	if fc.Style != "" {
		cfg.Style = fc.Style
	}
	if fc.Output != "" {
		cfg.Output = fc.Output
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: invalid timeout %q", fc.Timeout)
		}
		cfg.Timeout = d
	}

	providers := fc.Providers
	if len(providers) == 0 {
		for _, name := range DefaultProviders {
			providers = append(providers, ProviderConfig{Name: name})
		}
	}
	seen := map[string]bool{}
	for _, p := range providers {
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		if p.Name == "" {
			return nil, errors.New("config: provider entry without a name")
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("config: provider %q listed twice", p.Name)
		}
		seen[p.Name] = true

		prefix := strings.ToUpper(p.Name)
		if p.APIKeyEnv == "" {
			p.APIKeyEnv = prefix + "_API_KEY"
		}
		p.APIKey = env(p.APIKeyEnv)
		if m := env(prefix + "_MODEL"); m != "" {
			p.Model = m
		}
		cfg.Providers = append(cfg.Providers, p)
	}
	return cfg, nil
}

// HasCredential reports whether any provider in the chain has a key.
func (c *Config) HasCredential() bool {
	for _, p := range c.Providers {
		if p.APIKey != "" {
			return true
		}
	}
	return false
}

// SetCredential stores key for the named provider in memory.
func (c *Config) SetCredential(provider, key string) bool {
	for i := range c.Providers {
		if c.Providers[i].Name == provider {
			c.Providers[i].APIKey = key
			return true
		}
	}
	return false
}

func readDotEnv(path string) (map[string]string, error) {
	vals, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return vals, nil
}

func readFile(path string, required bool) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return fc, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
