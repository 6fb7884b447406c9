package agent

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// requestHandler is the part of the agent the handlers call.
type requestHandler interface {
	Handle(ctx context.Context, prompt, userID string) string
	HandleStreaming(ctx context.Context, prompt, userID string) <-chan string
}

// ProcessBody is the request body shared by both agent endpoints.
type ProcessBody struct {
	Prompt string `json:"prompt" required:"false" doc:"Natural-language request"`
	UserID string `json:"userId" required:"false" doc:"Caller identity; every store operation is scoped to it"`
}

// ProcessInput is the Huma input for the agent endpoints.
type ProcessInput struct {
	Body ProcessBody
}

// Resolve rejects blank prompts and user IDs with a 400.
func (i *ProcessInput) Resolve(huma.Context) []error {
	var errs []error
	if strings.TrimSpace(i.Body.Prompt) == "" {
		errs = append(errs, huma.Error400BadRequest("prompt must not be empty"))
	}
	if strings.TrimSpace(i.Body.UserID) == "" {
		errs = append(errs, huma.Error400BadRequest("userId must not be empty"))
	}
	return errs
}

// Reply carries one reply text.
type Reply struct {
	Response string `json:"response" doc:"Reply text for the user"`
}
