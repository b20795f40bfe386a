// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
	"github.com/expense-insights/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
// Soft-deleted rows are excluded from every query by gorm's DeletedAt handling.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create creates a new expense in the database.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	expenseModel := model.ExpenseFromEntity(expense)
	result := r.db.WithContext(ctx).Create(expenseModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a non-deleted expense by its ID. Returns (nil, nil) when absent.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// Update updates an existing expense in the database.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	expenseModel := model.ExpenseFromEntity(expense)
	result := r.db.WithContext(ctx).Save(expenseModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// SoftDelete marks an expense as deleted without removing the row.
func (r *expenseRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FetchExpenses returns the non-deleted expenses of userID matching the filter.
func (r *expenseRepository) FetchExpenses(ctx context.Context, userID uuid.UUID, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.ExpenseModel{}), userID, filter)

	var expenseModels []model.ExpenseModel
	result := query.Order(orderClause(filter.OrderAsc)).Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i, em := range expenseModels {
		expenses[i] = em.ToEntity()
	}
	return expenses, nil
}

// FindByFilter returns a paginated, filtered expense listing.
func (r *expenseRepository) FindByFilter(ctx context.Context, userID uuid.UUID, filter adapter.ExpenseFilter, pagination adapter.ExpensePagination) (*entity.ExpenseListResult, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.ExpenseModel{}), userID, filter)

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.PerPage

	var expenseModels []model.ExpenseModel
	result := query.
		Order(orderClause(filter.OrderAsc)).
		Offset(offset).
		Limit(pagination.PerPage).
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i, em := range expenseModels {
		expenses[i] = em.ToEntity()
	}

	totalPages := int((total + int64(pagination.PerPage) - 1) / int64(pagination.PerPage))

	return &entity.ExpenseListResult{
		Expenses:   expenses,
		Total:      total,
		Page:       pagination.Page,
		PerPage:    pagination.PerPage,
		TotalPages: totalPages,
	}, nil
}

// applyFilter narrows query to userID's rows matching filter.
func (r *expenseRepository) applyFilter(query *gorm.DB, userID uuid.UUID, filter adapter.ExpenseFilter) *gorm.DB {
	query = query.Where("user_id = ?", userID)

	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", filter.DateTo)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", searchPattern)
	}

	return query
}

func orderClause(asc bool) string {
	if asc {
		return "date ASC, created_at ASC"
	}
	return "date DESC, created_at DESC"
}
