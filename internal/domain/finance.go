package domain

import (
	"time"
)

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is one booked movement of money. Amount is unsigned; the sign
// is implied by Type (income adds to a balance, expense subtracts).
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
}

// TransactionInput is the caller-supplied part of a transaction; the store
// assigns the ID.
type TransactionInput struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
}

// Account is a single money holding (checking, savings, investment, ...).
// Balance is signed and mutated only by applying transactions.
type Account struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Balance     float64   `json:"balance"`
	Currency    string    `json:"currency"`
	LastUpdated time.Time `json:"last_updated"`
}

// Goal is a savings target. CurrentAmount may exceed TargetAmount; progress
// is never clamped.
type Goal struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Deadline      time.Time `json:"deadline"`
	Category      string    `json:"category"`
}

// GoalInput is the caller-supplied part of a goal.
type GoalInput struct {
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Deadline      time.Time `json:"deadline"`
	Category      string    `json:"category"`
}

// Budget is a per-category spending allocation for one period. Budgets are
// read-only in this core; nothing here updates Spent from transactions.
type Budget struct {
	ID        string  `json:"id"`
	Category  string  `json:"category"`
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
	Period    string  `json:"period"`
}

// CategorySpend is one row of the spending-by-category aggregate.
type CategorySpend struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}
