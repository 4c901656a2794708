// Package projection implements the scenario engine: a deterministic linear
// model that turns a set of percentage adjustments into a projected financial
// impact. The model is intentionally simple; it exists to give the dashboard
// stable, explainable numbers, not to be an accurate financial simulation.
package projection

import (
	"math"

	"github.com/dvloznov/finance-twin/internal/domain"
)

// Baseline the adjustments are applied against.
const (
	BaseNetWorth      = 250000
	BaseSavings       = 60000
	BaseRetirementAge = 65

	// MinRetirementAge is a hard floor; no combination of adjustments can
	// project a retirement age below it.
	MinRetirementAge = 45
)

// Project maps a set of adjustments to their projected impact. The same input
// always yields the same output. Adjustments are combined additively, so the
// evaluation order does not change the result; only the final retirement-age
// clamp is non-linear.
func Project(adj domain.Adjustments) domain.Impact {
	netWorthImpact := 1.0
	savingsImpact := 1.0
	retirementAgeImpact := 0.0

	if adj.IncomePct != nil {
		netWorthImpact += *adj.IncomePct / 100
		savingsImpact += *adj.IncomePct / 100
		retirementAgeImpact -= *adj.IncomePct / 100
	}

	if adj.ExpensesPct != nil {
		// A negative expense adjustment (spending less) improves everything.
		netWorthImpact -= *adj.ExpensesPct / 100
		savingsImpact -= *adj.ExpensesPct / 100
		retirementAgeImpact += *adj.ExpensesPct / 100
	}

	if adj.SavingsPct != nil {
		savingsImpact += *adj.SavingsPct / 100
		// Half-weighted relative to a direct income change.
		retirementAgeImpact -= *adj.SavingsPct / 200
	}

	if adj.InvestmentReturnPct != nil {
		r := *adj.InvestmentReturnPct / 100
		netWorthImpact += r * 2
		savingsImpact += r * 2
		retirementAgeImpact -= r
	}

	retirementAge := int(math.Round(BaseRetirementAge + retirementAgeImpact*10))
	if retirementAge < MinRetirementAge {
		retirementAge = MinRetirementAge
	}

	return domain.Impact{
		NetWorth:           int64(math.Round(BaseNetWorth * netWorthImpact)),
		SavingsAfter5Years: int64(math.Round(BaseSavings * savingsImpact)),
		RetirementAge:      retirementAge,
	}
}
