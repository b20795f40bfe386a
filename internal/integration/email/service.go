// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{queue: queue}
}

// QueueMonthlySummaryEmail queues a monthly expense summary email. The
// report content is flattened into the job's template data so the worker
// can render it after a persistence round trip.
func (s *Service) QueueMonthlySummaryEmail(ctx context.Context, input adapter.QueueMonthlySummaryInput) error {
	subject := fmt.Sprintf("Resumo de despesas de %s de %d - Expense Insights", input.MonthName, input.Year)

	categories := make([]interface{}, len(input.Categories))
	for i, c := range input.Categories {
		categories[i] = map[string]interface{}{
			"label":   c.Label,
			"total":   c.Total,
			"percent": c.Percent,
		}
	}

	insights := make([]interface{}, len(input.Insights))
	for i, message := range input.Insights {
		insights[i] = message
	}

	templateData := map[string]interface{}{
		"user_name":      input.UserName,
		"month_name":     input.MonthName,
		"year":           fmt.Sprintf("%d", input.Year),
		"total":          input.Total,
		"previous_total": input.PreviousTotal,
		"variance":       input.Variance,
		"categories":     categories,
		"insights":       insights,
	}

	job := entity.NewEmailJob(
		entity.TemplateMonthlySummary,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue monthly summary email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
