// Package metrics holds the derived-metric calculators for the dashboard.
// Everything here is a pure function over the current collections: callers
// recompute on every read, so there is no cache to invalidate and no way for
// these numbers to go stale.
package metrics

import (
	"time"

	"github.com/dvloznov/finance-twin/internal/domain"
)

// TotalBalance sums the balances of all accounts.
func TotalBalance(accounts []domain.Account) float64 {
	var total float64
	for _, a := range accounts {
		total += a.Balance
	}
	return total
}

// MonthlyIncome sums income transactions dated in the same calendar month and
// year as now. Callers pass time.Now(); tests pass a fixed reference.
func MonthlyIncome(transactions []domain.Transaction, now time.Time) float64 {
	return monthlyTotal(transactions, domain.TransactionIncome, now)
}

// MonthlyExpenses sums expense transactions dated in the same calendar month
// and year as now.
func MonthlyExpenses(transactions []domain.Transaction, now time.Time) float64 {
	return monthlyTotal(transactions, domain.TransactionExpense, now)
}

func monthlyTotal(transactions []domain.Transaction, typ domain.TransactionType, now time.Time) float64 {
	var total float64
	for _, t := range transactions {
		if t.Type != typ {
			continue
		}
		if t.Date.Month() == now.Month() && t.Date.Year() == now.Year() {
			total += t.Amount
		}
	}
	return total
}

// SpendingByCategory groups expense amounts by category. Income transactions
// are ignored and categories with no expenses do not appear. The result order
// is unspecified.
func SpendingByCategory(transactions []domain.Transaction) []domain.CategorySpend {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Type != domain.TransactionExpense {
			continue
		}
		totals[t.Category] += t.Amount
	}

	result := make([]domain.CategorySpend, 0, len(totals))
	for category, amount := range totals {
		result = append(result, domain.CategorySpend{Category: category, Amount: amount})
	}
	return result
}
