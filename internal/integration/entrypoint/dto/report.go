// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"fmt"

	"github.com/expense-insights/backend/internal/application/usecase/report"
	"github.com/expense-insights/backend/internal/domain/entity"
)

// InsightResponse is one derived insight in report payloads.
type InsightResponse struct {
	Tipo     string `json:"tipo"`
	Mensagem string `json:"mensagem"`
	Icone    string `json:"icone"`
}

// SummaryCategoryResponse is one category row of the period summary.
type SummaryCategoryResponse struct {
	ID            string  `json:"id"`
	Nome          string  `json:"nome"`
	Icone         string  `json:"icone"`
	Valor         float64 `json:"valor"`
	ValorAnterior float64 `json:"valor_anterior"`
	Variacao      float64 `json:"variacao"`
}

// SummaryResponse represents the month vs previous-month summary payload.
type SummaryResponse struct {
	Mes             int                       `json:"mes"`
	MesNome         string                    `json:"mes_nome"`
	Ano             int                       `json:"ano"`
	MesAnterior     int                       `json:"mes_anterior"`
	MesAnteriorNome string                    `json:"mes_anterior_nome"`
	AnoAnterior     int                       `json:"ano_anterior"`
	Total           float64                   `json:"total"`
	TotalAnterior   float64                   `json:"total_anterior"`
	VariacaoTotal   float64                   `json:"variacao_total"`
	Categorias      []SummaryCategoryResponse `json:"categorias"`
	Insights        []InsightResponse         `json:"insights,omitempty"`
}

// ProportionCategoryResponse is one non-zero category share.
type ProportionCategoryResponse struct {
	ID         string  `json:"id"`
	Nome       string  `json:"nome"`
	Icone      string  `json:"icone"`
	Valor      float64 `json:"valor"`
	Percentual float64 `json:"percentual"`
}

// ProportionResponse represents the category proportion payload.
type ProportionResponse struct {
	Mes        int                          `json:"mes"`
	MesNome    string                       `json:"mes_nome"`
	Ano        int                          `json:"ano"`
	Total      float64                      `json:"total"`
	Categorias []ProportionCategoryResponse `json:"categorias"`
}

// AnnualMonthValueResponse is one month cell of a category's year row.
type AnnualMonthValueResponse struct {
	Mes   string  `json:"mes"` // zero-padded, "01".."12"
	Valor float64 `json:"valor"`
}

// AnnualCategoryResponse is one category row of the annual report.
type AnnualCategoryResponse struct {
	ID         string                     `json:"id"`
	Nome       string                     `json:"nome"`
	Icone      string                     `json:"icone"`
	TotalAnual float64                    `json:"total_anual"`
	Meses      []AnnualMonthValueResponse `json:"meses"`
}

// AnnualMonthResponse is one month column total of the annual report.
type AnnualMonthResponse struct {
	Numero string  `json:"numero"` // zero-padded, "01".."12"
	Nome   string  `json:"nome"`
	Total  float64 `json:"total"`
}

// AnnualResponse represents the year-by-category report payload.
type AnnualResponse struct {
	Ano        int                      `json:"ano"`
	TotalAnual float64                  `json:"total_anual"`
	Categorias []AnnualCategoryResponse `json:"categorias"`
	Meses      []AnnualMonthResponse    `json:"meses"`
}

// OverviewPeriodResponse describes the resolved date range.
type OverviewPeriodResponse struct {
	Inicio string `json:"inicio"`
	Fim    string `json:"fim"`
	Meses  int    `json:"meses"`
}

// OverviewCategoryResponse is one of the most used categories.
type OverviewCategoryResponse struct {
	ID    string  `json:"id"`
	Nome  string  `json:"nome"`
	Icone string  `json:"icone"`
	Total float64 `json:"total"`
}

// HeaviestMonthResponse is the month with the highest spending, or null.
type HeaviestMonthResponse struct {
	Mes   int     `json:"mes"`
	Ano   int     `json:"ano"`
	Nome  string  `json:"nome"`
	Total float64 `json:"total"`
}

// EvolutionPointResponse is one point of the monthly evolution series.
type EvolutionPointResponse struct {
	Mes     int     `json:"mes"`
	Ano     int     `json:"ano"`
	NomeMes string  `json:"nome_mes"`
	Rotulo  string  `json:"rotulo"`
	Total   float64 `json:"total"`
}

// OverviewResponse represents the general overview payload.
type OverviewResponse struct {
	Periodo              OverviewPeriodResponse       `json:"periodo"`
	Total                float64                      `json:"total"`
	MediaMensal          float64                      `json:"media_mensal"`
	MaiorDespesa         float64                      `json:"maior_despesa"`
	CategoriasPrincipais []OverviewCategoryResponse   `json:"categorias_principais"`
	MesMaisGastos        *HeaviestMonthResponse       `json:"mes_mais_gastos"`
	Categorias           []ProportionCategoryResponse `json:"categorias"`
	EvolucaoMensal       []EvolutionPointResponse     `json:"evolucao_mensal"`
	Insights             []InsightResponse            `json:"insights"`
}

// ToInsightResponses converts derived insights to their DTOs.
func ToInsightResponses(insights []entity.Insight) []InsightResponse {
	out := make([]InsightResponse, len(insights))
	for i, ins := range insights {
		out[i] = InsightResponse{
			Tipo:     string(ins.Type),
			Mensagem: ins.Message,
			Icone:    ins.Icon,
		}
	}
	return out
}

// ToSummaryResponse converts the period summary output to its DTO.
func ToSummaryResponse(output *report.GetPeriodSummaryOutput) SummaryResponse {
	categorias := make([]SummaryCategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categorias[i] = SummaryCategoryResponse{
			ID:            string(c.ID),
			Nome:          c.Label,
			Icone:         c.Icon,
			Valor:         c.Current.InexactFloat64(),
			ValorAnterior: c.Previous.InexactFloat64(),
			Variacao:      c.VariancePct,
		}
	}

	resp := SummaryResponse{
		Mes:             output.Month,
		MesNome:         output.MonthName,
		Ano:             output.Year,
		MesAnterior:     output.PreviousMonth,
		MesAnteriorNome: output.PreviousMonthName,
		AnoAnterior:     output.PreviousYear,
		Total:           output.Total.InexactFloat64(),
		TotalAnterior:   output.PreviousTotal.InexactFloat64(),
		VariacaoTotal:   output.TotalVariancePct,
		Categorias:      categorias,
	}
	if len(output.Insights) > 0 {
		resp.Insights = ToInsightResponses(output.Insights)
	}
	return resp
}

// ToProportionResponse converts the proportion output to its DTO.
func ToProportionResponse(output *report.GetCategoryProportionOutput) ProportionResponse {
	return ProportionResponse{
		Mes:        output.Month,
		MesNome:    output.MonthName,
		Ano:        output.Year,
		Total:      output.Total.InexactFloat64(),
		Categorias: toProportionCategories(output.Categories),
	}
}

// ToAnnualResponse converts the annual matrix output to its DTO.
func ToAnnualResponse(output *report.GetAnnualMatrixOutput) AnnualResponse {
	categorias := make([]AnnualCategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		meses := make([]AnnualMonthValueResponse, len(c.Months))
		for j, mv := range c.Months {
			meses[j] = AnnualMonthValueResponse{
				Mes:   fmt.Sprintf("%02d", mv.Month),
				Valor: mv.Value.InexactFloat64(),
			}
		}
		categorias[i] = AnnualCategoryResponse{
			ID:         string(c.ID),
			Nome:       c.Label,
			Icone:      c.Icon,
			TotalAnual: c.AnnualTotal.InexactFloat64(),
			Meses:      meses,
		}
	}

	meses := make([]AnnualMonthResponse, len(output.Months))
	for i, m := range output.Months {
		meses[i] = AnnualMonthResponse{
			Numero: fmt.Sprintf("%02d", m.Month),
			Nome:   m.Name,
			Total:  m.Total.InexactFloat64(),
		}
	}

	return AnnualResponse{
		Ano:        output.Year,
		TotalAnual: output.AnnualTotal.InexactFloat64(),
		Categorias: categorias,
		Meses:      meses,
	}
}

// ToOverviewResponse converts the overview output to its DTO.
func ToOverviewResponse(output *report.GetOverviewOutput) OverviewResponse {
	principais := make([]OverviewCategoryResponse, len(output.TopCategories))
	for i, c := range output.TopCategories {
		principais[i] = OverviewCategoryResponse{
			ID:    string(c.ID),
			Nome:  c.Label,
			Icone: c.Icon,
			Total: c.Total.InexactFloat64(),
		}
	}

	var mesMaisGastos *HeaviestMonthResponse
	if output.HeaviestMonth != nil {
		mesMaisGastos = &HeaviestMonthResponse{
			Mes:   output.HeaviestMonth.Month,
			Ano:   output.HeaviestMonth.Year,
			Nome:  output.HeaviestMonth.Name,
			Total: output.HeaviestMonth.Total.InexactFloat64(),
		}
	}

	evolucao := make([]EvolutionPointResponse, len(output.Evolution))
	for i, p := range output.Evolution {
		evolucao[i] = EvolutionPointResponse{
			Mes:     p.Month,
			Ano:     p.Year,
			NomeMes: p.Name,
			Rotulo:  p.Label,
			Total:   p.Total.InexactFloat64(),
		}
	}

	return OverviewResponse{
		Periodo: OverviewPeriodResponse{
			Inicio: output.Period.Start.Format("2006-01-02"),
			Fim:    output.Period.End.Format("2006-01-02"),
			Meses:  output.Period.Months,
		},
		Total:                output.Total.InexactFloat64(),
		MediaMensal:          output.MonthlyAverage.InexactFloat64(),
		MaiorDespesa:         output.LargestExpense.InexactFloat64(),
		CategoriasPrincipais: principais,
		MesMaisGastos:        mesMaisGastos,
		Categorias:           toProportionCategories(output.Breakdown),
		EvolucaoMensal:       evolucao,
		Insights:             ToInsightResponses(output.Insights),
	}
}

func toProportionCategories(items []report.ProportionItem) []ProportionCategoryResponse {
	out := make([]ProportionCategoryResponse, len(items))
	for i, c := range items {
		out[i] = ProportionCategoryResponse{
			ID:         string(c.ID),
			Nome:       c.Label,
			Icone:      c.Icon,
			Valor:      c.Value.InexactFloat64(),
			Percentual: c.Percent,
		}
	}
	return out
}
