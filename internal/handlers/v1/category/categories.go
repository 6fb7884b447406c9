package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-agent/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID   string `json:"id" doc:"Category UUID"`
	Name string `json:"name" doc:"Category name"`
	Kind string `json:"kind" doc:"Income or Expense"`
}

type ListCategoriesResponseBody struct {
	Categories []Category `json:"categories"`
}

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body ListCategoriesResponseBody
}

type categoryLister interface {
	GetCategories(ctx context.Context) ([]service.Category, error)
}

// ListCategoriesHandler handles GET /v1/categories.
type ListCategoriesHandler struct {
	TransactionService categoryLister
}

func NewListCategoriesHandler(svc categoryLister) *ListCategoriesHandler {
	return &ListCategoriesHandler{TransactionService: svc}
}

// Register registers the list categories endpoint with the Huma API.
func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories, err := h.TransactionService.GetCategories(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list categories", err)
	}

	resp := ListCategoriesResponseBody{Categories: make([]Category, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = Category{ID: c.ID.String(), Name: c.Name, Kind: c.Kind.String()}
	}
	return &ListCategoriesOutput{Body: resp}, nil
}
