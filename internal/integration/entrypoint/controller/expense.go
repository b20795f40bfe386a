// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/application/usecase/expense"
	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
	"github.com/expense-insights/backend/internal/integration/entrypoint/dto"
	"github.com/expense-insights/backend/internal/integration/entrypoint/middleware"
)

// ExpenseController handles expense CRUD and category catalog endpoints.
type ExpenseController struct {
	createUseCase         *expense.CreateExpenseUseCase
	getUseCase            *expense.GetExpenseUseCase
	updateUseCase         *expense.UpdateExpenseUseCase
	deleteUseCase         *expense.DeleteExpenseUseCase
	listUseCase           *expense.ListExpensesUseCase
	listCategoriesUseCase *expense.ListCategoriesUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	createUseCase *expense.CreateExpenseUseCase,
	getUseCase *expense.GetExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	listUseCase *expense.ListExpensesUseCase,
	listCategoriesUseCase *expense.ListCategoriesUseCase,
) *ExpenseController {
	return &ExpenseController{
		createUseCase:         createUseCase,
		getUseCase:            getUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
		listUseCase:           listUseCase,
		listCategoriesUseCase: listCategoriesUseCase,
	}
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.ExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingDescription),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid data format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeMissingDate),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), expense.CreateExpenseInput{
		UserID:      userID,
		Description: req.Descricao,
		Category:    entity.CategoryID(req.Categoria),
		Amount:      decimal.NewFromFloat(req.Valor),
		Date:        date,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// Get handles GET /expenses/:id requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), expense.GetExpenseInput{
		UserID:    userID,
		ExpenseID: expenseID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Update handles PUT /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	var req dto.ExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingDescription),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid data format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeMissingDate),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), expense.UpdateExpenseInput{
		UserID:      userID,
		ExpenseID:   expenseID,
		Description: req.Descricao,
		Category:    entity.CategoryID(req.Categoria),
		Amount:      decimal.NewFromFloat(req.Valor),
		Date:        date,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		UserID:    userID,
		ExpenseID: expenseID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Despesa removida com sucesso"})
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := expense.ListExpensesInput{
		UserID:   userID,
		Search:   ctx.Query("descricao"),
		OrderAsc: ctx.Query("ordem_asc") == "true",
	}

	if categoria := ctx.Query("categoria"); categoria != "" {
		category := entity.CategoryID(categoria)
		input.Category = &category
	}
	input.Month, _ = strconv.Atoi(ctx.Query("mes"))
	input.Year, _ = strconv.Atoi(ctx.Query("ano"))
	input.Page, _ = strconv.Atoi(ctx.Query("page"))
	input.PerPage, _ = strconv.Atoi(ctx.Query("per_page"))

	if fromStr := ctx.Query("data_inicio"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid data_inicio format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		input.DateFrom = &from
	}
	if toStr := ctx.Query("data_fim"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid data_fim format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		input.DateTo = &to
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}

// Categories handles GET /categories requests.
func (c *ExpenseController) Categories(ctx *gin.Context) {
	output, err := c.listCategoriesUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output))
}

// handleExpenseError maps expense errors to HTTP responses.
func (c *ExpenseController) handleExpenseError(ctx *gin.Context, err error) {
	var expErr *domainerror.ExpenseError
	if errors.As(err, &expErr) {
		ctx.JSON(c.getStatusCodeForExpenseError(expErr.Code), dto.ErrorResponse{
			Error: expErr.Message,
			Code:  string(expErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForExpenseError maps expense error codes to HTTP status codes.
func (c *ExpenseController) getStatusCodeForExpenseError(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidCategory,
		domainerror.ErrCodeNegativeAmount,
		domainerror.ErrCodeMissingDescription,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeMissingDate:
		return http.StatusBadRequest
	case domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeExpenseForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// parseExpenseID reads the :id path parameter, responding 400 on garbage.
func parseExpenseID(ctx *gin.Context) (uuid.UUID, bool) {
	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid expense ID",
			Code:  string(domainerror.ErrCodeExpenseNotFound),
		})
		return uuid.Nil, false
	}
	return expenseID, true
}

// respondUnauthenticated writes the shared missing-authentication response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
