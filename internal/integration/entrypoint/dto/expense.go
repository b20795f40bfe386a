// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/expense-insights/backend/internal/application/usecase/expense"
)

// ExpenseRequest represents the request body for creating or updating an
// expense. Field names follow the Portuguese wire vocabulary of the domain.
type ExpenseRequest struct {
	Descricao string  `json:"descricao" binding:"required"`
	Categoria string  `json:"categoria" binding:"required"`
	Valor     float64 `json:"valor"`
	Data      string  `json:"data" binding:"required"` // YYYY-MM-DD
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID             string    `json:"id"`
	Descricao      string    `json:"descricao"`
	Categoria      string    `json:"categoria"`
	CategoriaNome  string    `json:"categoria_nome"`
	CategoriaIcone string    `json:"categoria_icone"`
	Valor          float64   `json:"valor"`
	Data           string    `json:"data"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ExpenseListResponse represents the paginated expense listing.
type ExpenseListResponse struct {
	Despesas   []ExpenseResponse `json:"despesas"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	TotalPages int               `json:"total_pages"`
}

// CategoryResponse represents one catalog entry in API responses.
type CategoryResponse struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Icone     string `json:"icone"`
}

// CategoryListResponse represents the category catalog listing.
type CategoryListResponse struct {
	Categorias []CategoryResponse `json:"categorias"`
}

// ToExpenseResponse converts a use case expense output to its DTO.
func ToExpenseResponse(e *expense.ExpenseOutput) ExpenseResponse {
	return ExpenseResponse{
		ID:             e.ID.String(),
		Descricao:      e.Description,
		Categoria:      string(e.Category),
		CategoriaNome:  e.CategoryLabel,
		CategoriaIcone: e.CategoryIcon,
		Valor:          e.Amount.InexactFloat64(),
		Data:           e.Date.Format("2006-01-02"),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// ToExpenseListResponse converts a use case listing output to its DTO.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	despesas := make([]ExpenseResponse, len(output.Expenses))
	for i, e := range output.Expenses {
		despesas[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{
		Despesas:   despesas,
		Total:      output.Total,
		Page:       output.Page,
		PerPage:    output.PerPage,
		TotalPages: output.TotalPages,
	}
}

// ToCategoryListResponse converts the catalog output to its DTO.
func ToCategoryListResponse(output *expense.ListCategoriesOutput) CategoryListResponse {
	categorias := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categorias[i] = CategoryResponse{
			ID:        string(c.ID),
			Nome:      c.Label,
			Descricao: c.Description,
			Icone:     c.Icon,
		}
	}
	return CategoryListResponse{Categorias: categorias}
}
