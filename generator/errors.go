package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNoCredentials means every provider in the chain was skipped for lack of a credential.
	ErrNoCredentials = errors.New("no provider credential configured")
	// ErrEmptyCompletion is returned for a provider answer that is blank after trimming.
	ErrEmptyCompletion = errors.New("provider returned empty text")
)

// ProviderTimeoutError reports a provider call that lost the race against the timeout.
type ProviderTimeoutError struct {
	Provider string
	Timeout  time.Duration
}

func (e *ProviderTimeoutError) Error() string {
	return fmt.Sprintf("provider %s timed out after %s", e.Provider, e.Timeout)
}

func (e *ProviderTimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ProviderCallError wraps a failed or unusable provider response.
type ProviderCallError struct {
	Provider string
	Err      error
}

func (e *ProviderCallError) Error() string {
	return fmt.Sprintf("provider %s failed: %v", e.Provider, e.Err)
}

func (e *ProviderCallError) Unwrap() error { return e.Err }

// AllProvidersFailedError lists one error per provider actually called.
type AllProvidersFailedError struct {
	Stage    Stage
	Attempts []error
}

func (e *AllProvidersFailedError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("%s stage: all providers failed: %v", e.Stage, ErrNoCredentials)
	}
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s stage: all providers failed: %s", e.Stage, strings.Join(msgs, "; "))
}

func (e *AllProvidersFailedError) Unwrap() []error {
	if len(e.Attempts) == 0 {
		return []error{ErrNoCredentials}
	}
	return e.Attempts
}

// GenerationError means the architect stage produced nothing.
type GenerationError struct {
	Stage Stage
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s stage: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
