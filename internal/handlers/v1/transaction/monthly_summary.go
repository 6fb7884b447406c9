package transaction

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-agent/internal/service"
)

// MonthlySummaryInput is the Huma input for the monthly summary. Month and
// year are strings so that an absent value can be told apart from zero.
type MonthlySummaryInput struct {
	UserID string `query:"userId" doc:"Owner of the transactions"`
	Month  string `query:"month" doc:"Month 1-12, defaults to the current month"`
	Year   string `query:"year" doc:"Year 1-9999, defaults to the current year"`
}

func (i *MonthlySummaryInput) Resolve(huma.Context) []error {
	return requireUserID(i.UserID)
}

// SummaryItem is the expense total of one category.
type SummaryItem struct {
	Category string `json:"category" doc:"Category name"`
	Total    string `json:"total" doc:"Decimal total"`
}

type MonthlySummaryResponseBody struct {
	Items []SummaryItem `json:"items" doc:"Totals per category, largest first"`
}

type MonthlySummaryOutput struct {
	Body MonthlySummaryResponseBody
}

// summaryReader is the interface for the monthly summary.
type summaryReader interface {
	GetMonthlySummary(ctx context.Context, userID string, month, year *int) ([]service.MonthlySummaryItem, error)
}

// MonthlySummaryHandler handles GET /v1/transactions/summary/monthly.
type MonthlySummaryHandler struct {
	TransactionService summaryReader
}

func NewMonthlySummaryHandler(svc summaryReader) *MonthlySummaryHandler {
	return &MonthlySummaryHandler{TransactionService: svc}
}

// Register registers the monthly summary endpoint with the Huma API.
func (h *MonthlySummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "monthly-summary",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/summary/monthly",
		Summary:     "Monthly expense summary",
		Description: "Totals the user's expenses per category for one month.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseOptionalInt(name, value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid "+name, err)
	}
	return &parsed, nil
}

func (h *MonthlySummaryHandler) handle(ctx context.Context, input *MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	month, err := parseOptionalInt("month", input.Month)
	if err != nil {
		return nil, err
	}
	year, err := parseOptionalInt("year", input.Year)
	if err != nil {
		return nil, err
	}

	summary, err := h.TransactionService.GetMonthlySummary(ctx, input.UserID, month, year)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to summarize transactions", err)
	}

	resp := MonthlySummaryResponseBody{Items: make([]SummaryItem, len(summary))}
	for i, item := range summary {
		resp.Items[i] = SummaryItem{Category: item.Category, Total: item.Total.String()}
	}
	return &MonthlySummaryOutput{Body: resp}, nil
}
