package agent

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-agent/internal/logging"
)

// ProcessOutput is the Huma output for POST /v1/agent/process.
type ProcessOutput struct {
	Body Reply
}

// ProcessHandler handles POST /v1/agent/process.
type ProcessHandler struct {
	Agent requestHandler
}

func NewProcessHandler(agent requestHandler) *ProcessHandler {
	return &ProcessHandler{Agent: agent}
}

// Register registers the process endpoint with the Huma API.
func (h *ProcessHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "agent-process",
		Method:      http.MethodPost,
		Path:        "/v1/agent/process",
		Summary:     "Process request",
		Description: "Runs a natural-language request through the agent and returns the reply.",
		Tags:        []string{"Agent"},
	}, h.handle)
}

func (h *ProcessHandler) handle(ctx context.Context, input *ProcessInput) (*ProcessOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("userId", input.Body.UserID)
		defer logData.AddTiming("agentMs")()
	}

	reply := h.Agent.Handle(ctx, input.Body.Prompt, input.Body.UserID)
	return &ProcessOutput{Body: Reply{Response: reply}}, nil
}
