package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"readme_genie/metrics"
)

const (
	actionManual     = "manual"
	actionApproveAll = "approveAll"
	actionDiscardAll = "discardAll"

	actionApprove = "approve"
	actionEdit    = "edit"
	actionDiscard = "discard"
)

var globalChoices = []Choice{
	{Label: "Go section-by-section for a detailed review", Value: actionManual},
	{Label: "✅ Approve All (Accept the entire draft as is)", Value: actionApproveAll},
	{Label: "❌ Discard All (Cancel the operation)", Value: actionDiscardAll},
}

var sectionChoices = []Choice{
	{Label: "✅ Approve", Value: actionApprove},
	{Label: "✏️ Edit", Value: actionEdit},
	{Label: "❌ Discard", Value: actionDiscard},
}

// Options controls the review flow. AutoApprove is set by --yes or a CI environment.
type Options struct {
	AutoApprove bool
}

// Engine drives the interactive review of a generated draft.
type Engine struct {
	prompter Prompter
	opts     Options
	logger   *slog.Logger
	recorder metrics.Recorder
}

func NewEngine(p Prompter, opts Options, logger *slog.Logger, recorder metrics.Recorder) (*Engine, error) {
	if p == nil && !opts.AutoApprove {
		return nil, errors.New("prompter is required for interactive review")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Engine{prompter: p, opts: opts, logger: logger, recorder: recorder}, nil
}

// Review returns the content to persist. An empty string with a nil error means the user
// chose not to write anything.
func (e *Engine) Review(ctx context.Context, draft string) (string, error) {
	if e.opts.AutoApprove {
		e.logger.Info("auto-approving draft (CI or --yes)")
		e.recorder.IncReviewOutcome("auto")
		return strings.TrimSpace(draft), nil
	}

	action, err := e.prompter.Choose(ctx, "An AI draft is ready. How would you like to proceed?", globalChoices)
	if err != nil {
		return "", err
	}
	switch action {
	case actionApproveAll:
		e.recorder.IncReviewOutcome("approved_all")
		return strings.TrimSpace(draft), nil
	case actionDiscardAll:
		e.prompter.Notify("Operation cancelled. No file will be written.")
		e.recorder.IncReviewOutcome("discarded_all")
		return "", nil
	case actionManual:
	default:
		return "", fmt.Errorf("review: unexpected choice %q", action)
	}

	session := NewSession(draft)
	logger := e.logger.With("session", session.ID)
	logger.Debug("manual review started", "sections", len(session.Sections))

	order, err := e.prompter.Order(ctx, "You can reorder the sections. (Press space to select, enter to confirm)", session.Headers())
	if err != nil {
		return "", err
	}
	if err := session.Reorder(order); err != nil {
		return "", err
	}

	for i := range session.Sections {
		if err := e.reviewSection(ctx, logger, session, i); err != nil {
			return "", err
		}
	}

	final := session.Assemble()
	if final == "" {
		e.prompter.Notify("All sections were discarded. No file will be written.")
		e.recorder.IncReviewOutcome("empty")
		return "", nil
	}
	e.recorder.IncReviewOutcome("manual")
	return final, nil
}

func (e *Engine) reviewSection(ctx context.Context, logger *slog.Logger, s *Session, i int) error {
	sec := s.Sections[i]
	title := fmt.Sprintf("Reviewing Section %d/%d", i+1, len(s.Sections))

	if sec.IsBoilerplate() {
		e.prompter.Notify(title + ": auto-approving " + sec.Header)
		return s.Decide(i, Approved, "")
	}

	e.prompter.Preview(title, sec.Body)
	action, err := e.prompter.Choose(ctx, "How do you want to handle this section?", sectionChoices)
	if err != nil {
		return err
	}
	switch action {
	case actionApprove:
		return s.Decide(i, Approved, "")
	case actionEdit:
		edited, err := e.prompter.Edit(ctx, "Edit the section. Save and close when done.", sec.Body)
		if err != nil {
			return err
		}
		logger.Debug("section edited", "header", sec.Header)
		return s.Decide(i, Edited, edited)
	case actionDiscard:
		logger.Debug("section discarded", "header", sec.Header)
		return s.Decide(i, Discarded, "")
	default:
		return fmt.Errorf("review: unexpected section choice %q", action)
	}
}
