package mapping

import (
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/jmwalsh/budgetbook/internal/models"
)

// ToModelFund converts a domain Fund to a model Fund
func ToModelFund(d domain.Fund) models.Fund {
	return models.Fund{
		FundID:              d.FundID,
		Name:                d.Name,
		Goal:                d.Goal,
		GoalDate:            d.GoalDate,
		CurrentBalance:      d.CurrentBalance,
		MonthlyContribution: d.MonthlyContribution,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainFund converts a model Fund to a domain Fund
func ToDomainFund(m models.Fund) domain.Fund {
	return domain.Fund{
		FundID:              m.FundID,
		Name:                m.Name,
		Goal:                m.Goal,
		GoalDate:            m.GoalDate,
		CurrentBalance:      m.CurrentBalance,
		MonthlyContribution: m.MonthlyContribution,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToDomainFundSlice converts a slice of model Funds
func ToDomainFundSlice(ms []models.Fund) []domain.Fund {
	ds := make([]domain.Fund, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFund(m)
	}
	return ds
}
