package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/logging"
	"github.com/carson-networks/budget-agent/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	UserID      string `json:"userId" required:"false" doc:"Owner of the transaction"`
	Amount      string `json:"amount" doc:"Decimal amount"`
	Category    string `json:"category,omitempty" doc:"Category name; unknown names are classified from the description"`
	Description string `json:"description" doc:"Free-text description"`
	Date        string `json:"date,omitempty" doc:"Calendar date as YYYY-MM-DD, defaults to today"`
	Kind        string `json:"kind,omitempty" doc:"Income or Expense, defaults to Expense"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

func (i *CreateTransactionInput) Resolve(huma.Context) []error {
	return requireUserID(i.Body.UserID)
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body Transaction
}

// transactionAdder is the interface for recording a transaction.
type transactionAdder interface {
	AddTransaction(ctx context.Context, create service.NewTransaction) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionAdder
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionAdder) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Records a transaction without going through the agent.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.NewTransaction, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.NewTransaction{}, huma.Error400BadRequest("invalid amount", err)
	}

	kind := category.KindExpense
	if input.Body.Kind != "" {
		var ok bool
		if kind, ok = category.ParseKind(input.Body.Kind); !ok {
			return service.NewTransaction{}, huma.Error400BadRequest("invalid kind")
		}
	}

	var date time.Time
	if input.Body.Date != "" {
		date, err = time.Parse(dateLayout, input.Body.Date)
		if err != nil {
			return service.NewTransaction{}, huma.Error400BadRequest("invalid date", err)
		}
	}

	return service.NewTransaction{
		UserID:       input.Body.UserID,
		Amount:       amount,
		CategoryName: input.Body.Category,
		Description:  input.Body.Description,
		Date:         date,
		Kind:         kind,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("userId", create.UserID)
		defer logData.AddTiming("addTransactionMs")()
	}

	tx, err := h.TransactionService.AddTransaction(ctx, create)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create transaction", err)
	}

	return &CreateTransactionOutput{Body: toTransaction(*tx)}, nil
}
