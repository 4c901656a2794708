// Package bigquery is the remote-store implementation of repo.Repository.
// Each dashboard collection maps to one table in the twin dataset; rows are
// owner-scoped by user_id and listed newest first.
package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED
	UserID        string `bigquery:"user_id"`        // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // DATE, REQUIRED
	Description     string     `bigquery:"description"`
	Amount          float64    `bigquery:"amount"` // unsigned; sign implied by type
	Category        string     `bigquery:"category"`
	Type            string     `bigquery:"type"` // "income" | "expense"

	CreatedTS time.Time `bigquery:"created_ts"`
}

type AccountRow struct {
	AccountID string `bigquery:"account_id"` // REQUIRED
	UserID    string `bigquery:"user_id"`    // REQUIRED

	AccountName string  `bigquery:"account_name"`
	AccountType string  `bigquery:"account_type"`
	Balance     float64 `bigquery:"balance"`
	Currency    string  `bigquery:"currency"`

	LastUpdated bigquery.NullTimestamp `bigquery:"last_updated"`
	CreatedTS   time.Time              `bigquery:"created_ts"`
}

type GoalRow struct {
	GoalID string `bigquery:"goal_id"` // REQUIRED
	UserID string `bigquery:"user_id"` // REQUIRED

	GoalName      string     `bigquery:"goal_name"`
	TargetAmount  float64    `bigquery:"target_amount"`
	CurrentAmount float64    `bigquery:"current_amount"`
	Deadline      civil.Date `bigquery:"deadline"` // DATE
	Category      string     `bigquery:"category"`

	CreatedTS time.Time              `bigquery:"created_ts"`
	UpdatedTS bigquery.NullTimestamp `bigquery:"updated_ts"`
}

type BudgetRow struct {
	BudgetID string `bigquery:"budget_id"` // REQUIRED
	UserID   string `bigquery:"user_id"`   // REQUIRED

	Category  string  `bigquery:"category"`
	Allocated float64 `bigquery:"allocated"`
	Spent     float64 `bigquery:"spent"`
	Period    string  `bigquery:"period"` // e.g. "2023-06"

	CreatedTS time.Time `bigquery:"created_ts"`
}

type ScenarioRow struct {
	ScenarioID string `bigquery:"scenario_id"` // REQUIRED
	UserID     string `bigquery:"user_id"`     // REQUIRED

	ScenarioName string `bigquery:"scenario_name"`
	Description  string `bigquery:"description"`

	// Adjustments and Impact are stored as serialized JSON payloads and
	// validated back into typed structs on read.
	Adjustments string `bigquery:"adjustments"`
	Impact      string `bigquery:"impact"`

	CreatedTS time.Time `bigquery:"created_ts"`
}
