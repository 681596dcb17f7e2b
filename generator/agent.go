package generator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"readme_genie/metrics"
)

// Completer is the part of Gateway the Agent depends on.
type Completer interface {
	Attempt(ctx context.Context, prompt string, stage Stage) (string, error)
}

// Agent runs the architect stage, then the stylist stage.
type Agent struct {
	llm      Completer
	logger   *slog.Logger
	recorder metrics.Recorder
}

func NewAgent(llm Completer, logger *slog.Logger, recorder metrics.Recorder) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm gateway is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Agent{llm: llm, logger: logger, recorder: recorder}, nil
}

// Generate falls back to the factual draft when styling fails.
func (a *Agent) Generate(ctx context.Context, files []ProjectFile, style string, meta ProjectMetadata) (string, error) {
	start := time.Now()
	a.logger.Info("generating factual draft", "files", len(files))
	raw, err := a.llm.Attempt(ctx, BuildArchitectPrompt(files, meta), StageArchitect)
	a.recorder.ObserveStageDuration(StageArchitect.String(), time.Since(start))
	if err != nil {
		return "", &GenerationError{Stage: StageArchitect, Err: err}
	}
	factual := PostProcess(raw)

	personality, ok := ResolveStyle(style)
	if !ok {
		a.logger.Warn("unknown style, falling back to default", "style", style, "fallback", string(personality.Key))
	}
	a.logger.Info("styling draft", "style", string(personality.Key))

	start = time.Now()
	styled, err := a.llm.Attempt(ctx, BuildStylistPrompt(personality, factual), StageStylist)
	a.recorder.ObserveStageDuration(StageStylist.String(), time.Since(start))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		a.logger.Warn("styling failed, keeping factual draft", "error", err)
		return factual, nil
	}
	return PostProcess(styled), nil
}
