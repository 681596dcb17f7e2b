package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"readme_genie/metrics"
)

// DefaultTimeout bounds every single provider call.
const DefaultTimeout = 30 * time.Second

// Gateway tries an ordered provider chain and returns the first successful completion.
type Gateway struct {
	providers []Provider
	timeout   time.Duration
	logger    *slog.Logger
	recorder  metrics.Recorder
}

type GatewayOption func(*Gateway)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

func WithRecorder(r metrics.Recorder) GatewayOption {
	return func(g *Gateway) {
		if r != nil {
			g.recorder = r
		}
	}
}

// NewGateway copies providers; the order given is the fallback priority and never changes.
func NewGateway(providers []Provider, opts ...GatewayOption) (*Gateway, error) {
	if len(providers) == 0 {
		return nil, errors.New("at least one provider is required")
	}
	for _, p := range providers {
		if p == nil {
			return nil, errors.New("nil provider in chain")
		}
	}
	g := &Gateway{
		providers: append([]Provider(nil), providers...),
		timeout:   DefaultTimeout,
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

func (g *Gateway) Providers() []string {
	names := make([]string, len(g.providers))
	for i, p := range g.providers {
		names[i] = p.Name()
	}
	return names
}

// Attempt swallows per-provider failures; only exhaustion or cancellation is returned.
func (g *Gateway) Attempt(ctx context.Context, prompt string, stage Stage) (string, error) {
	var attempts []error
	for _, p := range g.providers {
		name := p.Name()
		credential, ok := p.ResolveCredential()
		if !ok {
			g.logger.Debug("provider skipped: no credential", "provider", name, "stage", stage.String())
			g.recorder.IncProviderAttempt(name, stage.String(), metrics.OutcomeSkipped)
			continue
		}

		g.logger.Info("calling provider", "provider", name, "stage", stage.String())
		start := time.Now()
		text, err := g.call(ctx, p, prompt, credential)
		g.recorder.ObserveProviderDuration(name, stage.String(), time.Since(start))
		if err == nil {
			g.logger.Info("provider succeeded", "provider", name, "stage", stage.String())
			g.recorder.IncProviderAttempt(name, stage.String(), metrics.OutcomeSuccess)
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		g.recorder.IncProviderAttempt(name, stage.String(), outcomeOf(err))
		g.logger.Warn("provider failed", "provider", name, "stage", stage.String(), "error", err)
		attempts = append(attempts, err)
	}
	return "", &AllProvidersFailedError{Stage: stage, Attempts: attempts}
}

type completion struct {
	text string
	err  error
}

// call races one completion against the timeout; a late result is dropped.
func (g *Gateway) call(ctx context.Context, p Provider, prompt, credential string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	done := make(chan completion, 1)
	go func() {
		text, err := p.Complete(callCtx, prompt, credential)
		done <- completion{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() == nil {
				return "", &ProviderTimeoutError{Provider: p.Name(), Timeout: g.timeout}
			}
			return "", &ProviderCallError{Provider: p.Name(), Err: res.err}
		}
		text := strings.TrimSpace(res.text)
		if text == "" {
			return "", &ProviderCallError{Provider: p.Name(), Err: ErrEmptyCompletion}
		}
		return text, nil
	case <-callCtx.Done():
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &ProviderTimeoutError{Provider: p.Name(), Timeout: g.timeout}
	}
}

func outcomeOf(err error) metrics.Outcome {
	var timeout *ProviderTimeoutError
	switch {
	case errors.As(err, &timeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, ErrEmptyCompletion):
		return metrics.OutcomeEmpty
	default:
		return metrics.OutcomeError
	}
}
