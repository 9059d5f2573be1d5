package dto

import (
	"time"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFundRequest defines the payload for creating a fund.
type CreateFundRequest struct {
	Name                string           `json:"name" binding:"required"`
	Goal                *decimal.Decimal `json:"goal"`
	GoalDate            string           `json:"goalDate"` // "YYYY-MM-DD", optional
	MonthlyContribution *decimal.Decimal `json:"monthlyContribution"`
}

// UpdateFundRequest defines partial updates to a fund.
type UpdateFundRequest struct {
	Name                *string          `json:"name"`
	Goal                *decimal.Decimal `json:"goal"`
	GoalDate            *string          `json:"goalDate"`
	MonthlyContribution *decimal.Decimal `json:"monthlyContribution"`
}

// FundAmountRequest carries the amount of a contribution or withdrawal.
type FundAmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Notes  string          `json:"notes"`
}

// FundResponse defines the data returned for a fund.
type FundResponse struct {
	FundID                  string          `json:"fundID"`
	Name                    string          `json:"name"`
	Goal                    decimal.Decimal `json:"goal"`
	GoalDate                *string         `json:"goalDate,omitempty"`
	CurrentBalance          decimal.Decimal `json:"currentBalance"`
	MonthlyContribution     decimal.Decimal `json:"monthlyContribution"`
	RecommendedContribution decimal.Decimal `json:"recommendedContribution"`
	Progress                decimal.Decimal `json:"progress"`
}

// ToFundResponse converts a domain.Fund to FundResponse.
func ToFundResponse(f *domain.Fund, now time.Time) FundResponse {
	resp := FundResponse{
		FundID:                  f.FundID,
		Name:                    f.Name,
		Goal:                    f.Goal,
		CurrentBalance:          f.CurrentBalance,
		MonthlyContribution:     f.MonthlyContribution,
		RecommendedContribution: f.RecommendedContribution(now),
		Progress:                f.Progress(),
	}
	if f.GoalDate != nil {
		d := f.GoalDate.Format("2006-01-02")
		resp.GoalDate = &d
	}
	return resp
}

// ToFundResponses converts a slice of domain funds.
func ToFundResponses(funds []domain.Fund, now time.Time) []FundResponse {
	responses := make([]FundResponse, len(funds))
	for i := range funds {
		responses[i] = ToFundResponse(&funds[i], now)
	}
	return responses
}
