package generator

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Well-known OpenAI-compatible endpoints.
const (
	GeminiBaseURL   = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DeepSeekBaseURL = "https://api.deepseek.com"
)

var defaultModels = map[string]string{
	"gemini":   "gemini-1.5-flash",
	"openai":   "gpt-4o-mini",
	"deepseek": "deepseek-chat",
}

var defaultBaseURLs = map[string]string{
	"gemini":   GeminiBaseURL,
	"deepseek": DeepSeekBaseURL,
}

// OpenAILLM implements Provider using the official openai-go SDK (chat completions).
type OpenAILLM struct {
	name    string
	model   string
	apiKey  string
	baseURL string
}

// NewOpenAILLMFromConfig allows a missing API key; the gateway skips such providers.
func NewOpenAILLMFromConfig(cfg *LLMSettings) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name == "" {
		return nil, errors.New("llm provider name is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModels[name]
	}
	if model == "" {
		return nil, errors.New("llm model is required for provider " + name)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURLs[name]
	}
	return &OpenAILLM{
		name:    name,
		model:   model,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
	}, nil
}

func (o *OpenAILLM) Name() string { return o.name }

func (o *OpenAILLM) Model() string { return o.model }

func (o *OpenAILLM) ResolveCredential() (string, bool) {
	return o.apiKey, o.apiKey != ""
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt, credential string) (string, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(credential),
		option.WithMaxRetries(0),
	}
	if o.baseURL != "" {
		opts = append(opts, option.WithBaseURL(o.baseURL))
	}
	client := openai.NewClient(opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(o.name + ": empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
