package generator

import "context"

// Provider is one backend in the fallback chain. No credential means skip, not fail.
type Provider interface {
	Name() string
	ResolveCredential() (string, bool)
	Complete(ctx context.Context, prompt, credential string) (string, error)
}

// LLMSettings configures one OpenAI-compatible provider.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
