package review

import (
	"context"
	"errors"
)

// ErrAborted is returned by a Prompter when the user quits a prompt (Ctrl-C, Esc).
var ErrAborted = errors.New("review aborted by user")

// Choice is one option of a single-choice prompt.
type Choice struct {
	Label string
	Value string
}

// Prompter is the interaction port the Engine talks to. Choose, Order and Edit block until
// the user answers; Preview and Notify only display.
type Prompter interface {
	Choose(ctx context.Context, message string, choices []Choice) (string, error)
	// Order returns the selected item indexes in the order they were picked.
	Order(ctx context.Context, message string, items []string) ([]int, error)
	Edit(ctx context.Context, message, seed string) (string, error)
	Preview(title, body string)
	Notify(message string)
}
