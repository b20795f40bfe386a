// Package expense contains expense-related use cases.
package expense

import (
	"context"

	"github.com/expense-insights/backend/internal/domain/entity"
)

// CategoryOutput represents one catalog category in the output.
type CategoryOutput struct {
	ID          entity.CategoryID
	Label       string
	Description string
	Icon        string
}

// ListCategoriesOutput represents the catalog listing output.
type ListCategoriesOutput struct {
	Categories []CategoryOutput
}

// ListCategoriesUseCase exposes the static category catalog.
type ListCategoriesUseCase struct {
	catalog *entity.Catalog
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(catalog *entity.Catalog) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{catalog: catalog}
}

// Execute returns the catalog entries in canonical order.
func (uc *ListCategoriesUseCase) Execute(_ context.Context) (*ListCategoriesOutput, error) {
	entries := uc.catalog.Entries()
	categories := make([]CategoryOutput, len(entries))
	for i, entry := range entries {
		categories[i] = CategoryOutput{
			ID:          entry.ID,
			Label:       entry.Label,
			Description: entry.Description,
			Icon:        entry.Icon,
		}
	}
	return &ListCategoriesOutput{Categories: categories}, nil
}
