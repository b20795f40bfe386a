// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/application/usecase/report"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
	"github.com/expense-insights/backend/internal/integration/entrypoint/dto"
	"github.com/expense-insights/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles the report endpoints. Successful report payloads
// are cached per user; expense writes invalidate the whole user scope.
type ReportController struct {
	summaryUseCase    *report.GetPeriodSummaryUseCase
	proportionUseCase *report.GetCategoryProportionUseCase
	annualUseCase     *report.GetAnnualMatrixUseCase
	overviewUseCase   *report.GetOverviewUseCase
	userRepo          adapter.UserRepository
	emailService      adapter.EmailService
	cache             adapter.ReportCache
}

// NewReportController creates a new report controller instance.
func NewReportController(
	summaryUseCase *report.GetPeriodSummaryUseCase,
	proportionUseCase *report.GetCategoryProportionUseCase,
	annualUseCase *report.GetAnnualMatrixUseCase,
	overviewUseCase *report.GetOverviewUseCase,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
	cache adapter.ReportCache,
) *ReportController {
	return &ReportController{
		summaryUseCase:    summaryUseCase,
		proportionUseCase: proportionUseCase,
		annualUseCase:     annualUseCase,
		overviewUseCase:   overviewUseCase,
		userRepo:          userRepo,
		emailService:      emailService,
		cache:             cache,
	}
}

// GetSummary handles GET /reports/summary requests.
func (c *ReportController) GetSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	now := time.Now().UTC()
	mes, ano := parsePeriodParams(ctx, now)
	includeInsights := ctx.DefaultQuery("insights", "true") == "true"

	cacheKey := fmt.Sprintf("summary:%d:%d:%t", ano, mes, includeInsights)
	if c.serveCached(ctx, userID, cacheKey) {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), report.GetPeriodSummaryInput{
		UserID:          userID,
		Month:           mes,
		Year:            ano,
		IncludeInsights: includeInsights,
		Now:             now,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	c.respondAndCache(ctx, userID, cacheKey, dto.ToSummaryResponse(output))
}

// GetProportion handles GET /reports/proportion requests.
func (c *ReportController) GetProportion(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	mes, ano := parsePeriodParams(ctx, time.Now().UTC())

	cacheKey := fmt.Sprintf("proportion:%d:%d", ano, mes)
	if c.serveCached(ctx, userID, cacheKey) {
		return
	}

	output, err := c.proportionUseCase.Execute(ctx.Request.Context(), report.GetCategoryProportionInput{
		UserID: userID,
		Month:  mes,
		Year:   ano,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	c.respondAndCache(ctx, userID, cacheKey, dto.ToProportionResponse(output))
}

// GetAnnual handles GET /reports/annual requests.
func (c *ReportController) GetAnnual(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ano, err := strconv.Atoi(ctx.DefaultQuery("ano", strconv.Itoa(time.Now().UTC().Year())))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "ano inválido",
			Code:  string(domainerror.ErrCodeInvalidYear),
		})
		return
	}

	cacheKey := fmt.Sprintf("annual:%d", ano)
	if c.serveCached(ctx, userID, cacheKey) {
		return
	}

	output, err := c.annualUseCase.Execute(ctx.Request.Context(), report.GetAnnualMatrixInput{
		UserID: userID,
		Year:   ano,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	c.respondAndCache(ctx, userID, cacheKey, dto.ToAnnualResponse(output))
}

// GetOverview handles GET /reports/overview requests.
func (c *ReportController) GetOverview(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := report.GetOverviewInput{
		UserID: userID,
		Now:    time.Now().UTC(),
	}

	if fromStr := ctx.Query("data_inicio"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "data_inicio inválida, formato esperado YYYY-MM-DD",
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
				Error: "data_fim inválida, formato esperado YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		input.DateTo = &to
	}

	cacheKey := fmt.Sprintf("overview:%s:%s", ctx.Query("data_inicio"), ctx.Query("data_fim"))
	if c.serveCached(ctx, userID, cacheKey) {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	c.respondAndCache(ctx, userID, cacheKey, dto.ToOverviewResponse(output))
}

// EmailSummary handles POST /reports/summary/email requests. It assembles
// the period summary and queues it for asynchronous delivery.
func (c *ReportController) EmailSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	now := time.Now().UTC()
	mes, ano := parsePeriodParams(ctx, now)

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), report.GetPeriodSummaryInput{
		UserID:          userID,
		Month:           mes,
		Year:            ano,
		IncludeInsights: true,
		Now:             now,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	user, err := c.userRepo.FindByID(ctx.Request.Context(), userID)
	if err != nil || user == nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	if err := c.emailService.QueueMonthlySummaryEmail(ctx.Request.Context(), buildSummaryEmail(user.Email, user.Name, output)); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Não foi possível enfileirar o e-mail de resumo",
		})
		return
	}

	ctx.JSON(http.StatusAccepted, dto.MessageResponse{
		Message: fmt.Sprintf("Resumo de %s de %d enviado para %s", output.MonthName, output.Year, user.Email),
	})
}

// serveCached writes a cached payload when one exists.
func (c *ReportController) serveCached(ctx *gin.Context, userID uuid.UUID, key string) bool {
	payload, found := c.cache.Get(ctx.Request.Context(), userID, key)
	if !found {
		return false
	}
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", payload)
	return true
}

// respondAndCache serializes the response once, serving and caching the
// same bytes.
func (c *ReportController) respondAndCache(ctx *gin.Context, userID uuid.UUID, key string, response interface{}) {
	payload, err := json.Marshal(response)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	c.cache.Set(ctx.Request.Context(), userID, key, payload)
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// handleReportError maps report errors to HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var rptErr *domainerror.ReportError
	if errors.As(err, &rptErr) && domainerror.IsInvalidPeriod(err) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: rptErr.Message,
			Code:  string(rptErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// parsePeriodParams reads mes/ano query params, defaulting to the current
// period. Unparseable values become zero and fail period validation later.
func parsePeriodParams(ctx *gin.Context, now time.Time) (int, int) {
	mes, _ := strconv.Atoi(ctx.DefaultQuery("mes", strconv.Itoa(int(now.Month()))))
	ano, _ := strconv.Atoi(ctx.DefaultQuery("ano", strconv.Itoa(now.Year())))
	return mes, ano
}

// buildSummaryEmail flattens a summary report into the email queue input.
// Amounts are formatted here so the email layer stays presentation-only.
func buildSummaryEmail(email, name string, output *report.GetPeriodSummaryOutput) adapter.QueueMonthlySummaryInput {
	categories := make([]adapter.MonthlySummaryCategory, 0, len(output.Categories))
	for _, cat := range output.Categories {
		if cat.Current.IsZero() {
			continue
		}
		percent := 0.0
		if !output.Total.IsZero() {
			percent, _ = cat.Current.Div(output.Total).Mul(decimal.NewFromInt(100)).Float64()
		}
		categories = append(categories, adapter.MonthlySummaryCategory{
			Label:   cat.Label,
			Total:   formatBRL(cat.Current),
			Percent: fmt.Sprintf("%.0f%%", percent),
		})
	}

	insights := make([]string, len(output.Insights))
	for i, ins := range output.Insights {
		insights[i] = ins.Message
	}

	return adapter.QueueMonthlySummaryInput{
		UserEmail:     email,
		UserName:      name,
		MonthName:     output.MonthName,
		Year:          output.Year,
		Total:         formatBRL(output.Total),
		PreviousTotal: formatBRL(output.PreviousTotal),
		Variance:      fmt.Sprintf("%+.0f%%", output.TotalVariancePct),
		Categories:    categories,
		Insights:      insights,
	}
}

// formatBRL renders a decimal amount with the Brazilian decimal separator.
func formatBRL(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
