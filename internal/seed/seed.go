// Package seed holds the built-in default dataset. It is the data source when
// no session exists and the fallback when the remote store cannot be read, so
// the dashboard always has something sensible to show.
package seed

import (
	"time"

	"github.com/dvloznov/finance-twin/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Transactions returns a fresh copy of the default transaction history,
// newest first.
func Transactions() []domain.Transaction {
	return []domain.Transaction{
		{ID: "tr-10", Date: day(2023, time.June, 5), Description: "Investment Dividend", Amount: 180, Category: "Investment", Type: domain.TransactionIncome},
		{ID: "tr-9", Date: day(2023, time.June, 1), Description: "Mortgage Payment", Amount: 1200, Category: "Housing", Type: domain.TransactionExpense},
		{ID: "tr-8", Date: day(2023, time.May, 30), Description: "Uber Ride", Amount: 22.50, Category: "Transportation", Type: domain.TransactionExpense},
		{ID: "tr-7", Date: day(2023, time.May, 28), Description: "Gym Membership", Amount: 50, Category: "Health", Type: domain.TransactionExpense},
		{ID: "tr-6", Date: day(2023, time.May, 26), Description: "Online Shopping", Amount: 135.99, Category: "Shopping", Type: domain.TransactionExpense},
		{ID: "tr-5", Date: day(2023, time.May, 24), Description: "Gas Station", Amount: 45.20, Category: "Transportation", Type: domain.TransactionExpense},
		{ID: "tr-4", Date: day(2023, time.May, 22), Description: "Restaurant", Amount: 68.35, Category: "Dining", Type: domain.TransactionExpense},
		{ID: "tr-3", Date: day(2023, time.May, 20), Description: "Internet Bill", Amount: 80, Category: "Utilities", Type: domain.TransactionExpense},
		{ID: "tr-2", Date: day(2023, time.May, 18), Description: "Grocery Store", Amount: 125.50, Category: "Groceries", Type: domain.TransactionExpense},
		{ID: "tr-1", Date: day(2023, time.May, 15), Description: "Salary Deposit", Amount: 4200, Category: "Income", Type: domain.TransactionIncome},
	}
}

// Accounts returns a fresh copy of the default accounts.
func Accounts() []domain.Account {
	updated := day(2023, time.June, 1)
	return []domain.Account{
		{ID: "acc-1", Name: "Checking Account", Type: "checking", Balance: 4500, Currency: "USD", LastUpdated: updated},
		{ID: "acc-2", Name: "Savings Account", Type: "savings", Balance: 12000, Currency: "USD", LastUpdated: updated},
		{ID: "acc-3", Name: "Investment Portfolio", Type: "investment", Balance: 85000, Currency: "USD", LastUpdated: updated},
		{ID: "acc-4", Name: "Retirement 401(k)", Type: "retirement", Balance: 125000, Currency: "USD", LastUpdated: updated},
	}
}

// Goals returns a fresh copy of the default goals.
func Goals() []domain.Goal {
	return []domain.Goal{
		{ID: "goal-1", Name: "Emergency Fund", TargetAmount: 20000, CurrentAmount: 12000, Deadline: day(2023, time.December, 31), Category: "Savings"},
		{ID: "goal-2", Name: "Vacation", TargetAmount: 5000, CurrentAmount: 2800, Deadline: day(2023, time.August, 31), Category: "Travel"},
		{ID: "goal-3", Name: "Down Payment", TargetAmount: 50000, CurrentAmount: 35000, Deadline: day(2024, time.June, 30), Category: "Housing"},
	}
}

// Budgets returns a fresh copy of the default budgets.
func Budgets() []domain.Budget {
	return []domain.Budget{
		{ID: "budget-1", Category: "Housing", Allocated: 1500, Spent: 1200, Period: "2023-06"},
		{ID: "budget-2", Category: "Groceries", Allocated: 600, Spent: 450, Period: "2023-06"},
		{ID: "budget-3", Category: "Transportation", Allocated: 400, Spent: 250, Period: "2023-06"},
		{ID: "budget-4", Category: "Entertainment", Allocated: 300, Spent: 180, Period: "2023-06"},
		{ID: "budget-5", Category: "Dining", Allocated: 350, Spent: 280, Period: "2023-06"},
	}
}

// Scenarios returns the three built-in scenarios shown before the user runs
// any projection of their own. Their impact figures are part of the default
// dataset, not engine output.
func Scenarios() []domain.Scenario {
	return []domain.Scenario{
		{
			ID:          "scenario-1",
			Name:        "Base Scenario",
			Description: "Your current financial trajectory",
			Adjustments: domain.Adjustments{},
			Impact:      domain.Impact{NetWorth: 250000, SavingsAfter5Years: 60000, RetirementAge: 65},
		},
		{
			ID:          "scenario-2",
			Name:        "Increased Savings",
			Description: "Save 15% more of your income",
			Adjustments: domain.Adjustments{SavingsPct: domain.Pct(15)},
			Impact:      domain.Impact{NetWorth: 320000, SavingsAfter5Years: 98000, RetirementAge: 62},
		},
		{
			ID:          "scenario-3",
			Name:        "Early Retirement",
			Description: "Aggressive investment strategy",
			Adjustments: domain.Adjustments{
				SavingsPct:          domain.Pct(25),
				ExpensesPct:         domain.Pct(-10),
				InvestmentReturnPct: domain.Pct(8),
			},
			Impact: domain.Impact{NetWorth: 450000, SavingsAfter5Years: 142000, RetirementAge: 55},
		},
	}
}
