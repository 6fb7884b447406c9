package completion

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAIConfig configures an OpenAI-compatible chat completion endpoint.
type OpenAIConfig struct {
	Endpoint      string
	Model         string
	APIKey        string
	RetryAttempts uint
	RetryDelay    time.Duration
}

// OpenAI talks to any server that implements the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	cfg    OpenAIConfig
}

var _ Provider = (*OpenAI)(nil)

func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

func (o *OpenAI) request(prompt string, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: o.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Stream: stream,
	}
}

// Complete returns the first choice of a buffered completion.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	var content string
	err := o.withRetry(ctx, "Complete", func() error {
		resp, err := o.client.CreateChatCompletion(ctx, o.request(prompt, false))
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return ErrEmptyResponse
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	return content, err
}

// CompleteStreaming opens a fragment stream. Only opening the stream is retried.
func (o *OpenAI) CompleteStreaming(ctx context.Context, prompt string) (Stream, error) {
	var stream *openai.ChatCompletionStream
	err := o.withRetry(ctx, "CompleteStreaming", func() error {
		var err error
		stream, err = o.client.CreateChatCompletionStream(ctx, o.request(prompt, true))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &openAIStream{stream: stream}, nil
}

func (o *OpenAI) withRetry(ctx context.Context, operation string, fn func() error) error {
	return retry.Do(
		fn,
		retry.RetryIf(func(err error) bool {
			if ctx.Err() != nil || !retryable(err) {
				return false
			}
			logrus.WithError(err).WithField("operation", operation).Warn("OpenAI.withRetry.retrying")
			return true
		}),
		retry.Attempts(o.cfg.RetryAttempts),
		retry.Delay(o.cfg.RetryDelay),
		retry.LastErrorOnly(true),
	)
}

// retryable reports whether err may succeed on a second attempt. Client
// errors other than rate limiting are final.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	return true
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openAIStream) Recv() (string, error) {
	resp, err := s.stream.Recv()
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
