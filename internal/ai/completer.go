package ai

import (
	"context"
	"errors"
)

var ErrEmptyCompletion = errors.New("completion service returned no text")

// Completer turns a prompt into free text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
