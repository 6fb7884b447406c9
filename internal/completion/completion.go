// Package completion wraps the text-completion model the agent talks to.
package completion

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model answers with no choices.
var ErrEmptyResponse = errors.New("completion returned no choices")

// Provider produces a completion for a prompt, whole or as a fragment stream.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteStreaming(ctx context.Context, prompt string) (Stream, error)
}

// Stream yields completion fragments. Recv returns io.EOF after the last one.
type Stream interface {
	Recv() (string, error)
	Close() error
}
