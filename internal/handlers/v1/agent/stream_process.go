package agent

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/sirupsen/logrus"
)

// StreamProcessHandler handles POST /v1/agent/stream-process. Replies are
// sent as "message" events.
type StreamProcessHandler struct {
	Agent requestHandler
}

func NewStreamProcessHandler(agent requestHandler) *StreamProcessHandler {
	return &StreamProcessHandler{Agent: agent}
}

// Register registers the streaming endpoint with the Huma API.
func (h *StreamProcessHandler) Register(api huma.API) {
	sse.Register(api, huma.Operation{
		OperationID: "agent-stream-process",
		Method:      http.MethodPost,
		Path:        "/v1/agent/stream-process",
		Summary:     "Process request (streaming)",
		Description: "Runs a natural-language request through the agent and streams the reply as server-sent events.",
		Tags:        []string{"Agent"},
	}, map[string]any{
		"message": Reply{},
	}, h.handle)
}

func (h *StreamProcessHandler) handle(ctx context.Context, input *ProcessInput, send sse.Sender) {
	for reply := range h.Agent.HandleStreaming(ctx, input.Body.Prompt, input.Body.UserID) {
		if err := send.Data(Reply{Response: reply}); err != nil {
			logrus.WithError(err).WithField("userId", input.Body.UserID).Warn("StreamProcessHandler.handle.sendError")
			return
		}
	}
}
