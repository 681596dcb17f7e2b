package generator

import (
	"context"
	"strings"
	"sync"
	"time"
)

// fakeProvider is a scripted Provider that records what it was asked.
type fakeProvider struct {
	name       string
	credential string
	reply      func(prompt string) (string, error)
	delay      time.Duration
	ignoreCtx  bool

	mu      sync.Mutex
	prompts []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) ResolveCredential() (string, bool) {
	return f.credential, f.credential != ""
}

func (f *fakeProvider) Complete(ctx context.Context, prompt, credential string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.delay > 0 {
		if f.ignoreCtx {
			time.Sleep(f.delay)
		} else {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	if f.reply == nil {
		return echoReadme(prompt), nil
	}
	return f.reply(prompt)
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// echoReadme builds a small README around the prompt, like a model that did the bare minimum.
func echoReadme(prompt string) string {
	var sb strings.Builder
	sb.WriteString("# Sample Project\n\n")
	sb.WriteString("## Usage\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt[:min(len(prompt), 40)])
	sb.WriteString("\n```\n")
	return sb.String()
}

func replyWith(text string) func(string) (string, error) {
	return func(string) (string, error) { return text, nil }
}

func failWith(err error) func(string) (string, error) {
	return func(string) (string, error) { return "", err }
}
