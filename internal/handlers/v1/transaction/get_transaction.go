package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-agent/internal/service"
)

// TransactionByIDInput identifies one of the user's transactions.
type TransactionByIDInput struct {
	ID     string `path:"id" doc:"Transaction UUID"`
	UserID string `query:"userId" doc:"Owner of the transaction"`
}

func (i *TransactionByIDInput) Resolve(huma.Context) []error {
	return requireUserID(i.UserID)
}

func (i *TransactionByIDInput) parseID() (uuid.UUID, error) {
	id, err := uuid.FromString(i.ID)
	if err != nil {
		return uuid.Nil, huma.Error400BadRequest("invalid id", err)
	}
	return id, nil
}

// GetTransactionOutput is the Huma output for reading one transaction.
type GetTransactionOutput struct {
	Body Transaction
}

// transactionGetter is the interface for reading one transaction.
type transactionGetter interface {
	GetTransaction(ctx context.Context, userID string, id uuid.UUID) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transaction/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

// Register registers the get transaction endpoint with the Huma API.
func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *TransactionByIDInput) (*GetTransactionOutput, error) {
	id, err := input.parseID()
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.GetTransaction(ctx, input.UserID, id)
	if err != nil {
		return nil, notFoundOr(err, "failed to get transaction")
	}
	return &GetTransactionOutput{Body: toTransaction(*tx)}, nil
}
