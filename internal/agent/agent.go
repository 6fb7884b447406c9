// Package agent turns a user's natural-language request into a function call
// against the transaction store and renders the reply.
package agent

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-agent/internal/completion"
)

// MessageProviderError is the reply for any completion provider failure.
const MessageProviderError = "An error occurred while processing your request. Please try again later."

type Agent struct {
	provider   completion.Provider
	dispatcher *Dispatcher
	timeout    time.Duration
	now        func() time.Time
}

// NewAgent creates an Agent. A zero timeout leaves the caller's deadline alone.
func NewAgent(provider completion.Provider, dispatcher *Dispatcher, timeout time.Duration) *Agent {
	return &Agent{
		provider:   provider,
		dispatcher: dispatcher,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Handle completes the prompt, then parses and dispatches the model output.
// Failures are returned as reply text, never as errors.
func (a *Agent) Handle(ctx context.Context, prompt, userID string) string {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	raw, err := a.provider.Complete(ctx, BuildPrompt(a.now(), prompt))
	if err != nil {
		logrus.WithError(err).WithField("userId", userID).Error("Agent.Handle.providerError")
		return MessageProviderError
	}
	return a.dispatch(ctx, raw, userID)
}

// HandleStreaming reads the whole fragment stream before parsing and
// dispatching. The returned channel yields exactly one reply and is then closed.
func (a *Agent) HandleStreaming(ctx context.Context, prompt, userID string) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)
		out <- a.handleStream(ctx, prompt, userID)
	}()
	return out
}

func (a *Agent) handleStream(ctx context.Context, prompt, userID string) string {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	log := logrus.WithField("userId", userID)
	stream, err := a.provider.CompleteStreaming(ctx, BuildPrompt(a.now(), prompt))
	if err != nil {
		log.WithError(err).Error("Agent.HandleStreaming.providerError")
		return MessageProviderError
	}
	defer func() {
		if err := stream.Close(); err != nil {
			log.WithError(err).Warn("Agent.HandleStreaming.closeError")
		}
	}()

	var raw strings.Builder
	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.WithError(err).Error("Agent.HandleStreaming.streamError")
			return MessageProviderError
		}
		raw.WriteString(fragment)
	}
	return a.dispatch(ctx, raw.String(), userID)
}

func (a *Agent) dispatch(ctx context.Context, raw, userID string) string {
	intent := Parse(raw)
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithField("userId", userID).Debugf("Agent.dispatch.intent %s", spew.Sdump(intent))
	}
	if intent.Kind == IntentParseFailure {
		logrus.WithField("userId", userID).Warn("Agent.dispatch.parseFailure")
	}
	return a.dispatcher.Dispatch(ctx, intent, userID)
}

func (a *Agent) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
