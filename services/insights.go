package services

import (
	"strconv"
	"strings"

	"github.com/fleece-labs/fleece-api/models"
)

// InsightsService aggregates the user's portfolio into the metrics and
// chart series the portfolio page displays.
type InsightsService struct{}

func NewInsightsService() *InsightsService {
	return &InsightsService{}
}

func (s *InsightsService) Portfolio(cards []models.UserCard) models.PortfolioInsights {
	insights := models.PortfolioInsights{
		TotalCards: len(cards),
		Cards:      make([]models.CardInsightEntry, 0, len(cards)),
	}

	for _, card := range cards {
		fee := ParseAnnualFee(card.AnnualFee)
		insights.TotalCreditLimit += card.CreditLimit
		insights.TotalAnnualFees += fee
		insights.Cards = append(insights.Cards, models.CardInsightEntry{
			Name:        card.Name,
			AnnualFee:   fee,
			CreditLimit: card.CreditLimit,
		})
	}

	return insights
}

// ParseAnnualFee turns display strings like "$95" or "$1,250" into a
// dollar amount. Unparseable values count as zero rather than failing
// the whole aggregation.
func ParseAnnualFee(fee string) int {
	cleaned := strings.TrimSpace(fee)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}
