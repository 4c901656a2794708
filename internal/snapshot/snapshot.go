// Package snapshot serializes the full dashboard state, collections plus
// derived metrics, into a JSON document that can be archived to Cloud
// Storage or written to disk.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvloznov/finance-twin/internal/domain"
	"github.com/dvloznov/finance-twin/internal/finance"
	"github.com/dvloznov/finance-twin/internal/session"
)

// Snapshot is one point-in-time export of the dashboard.
type Snapshot struct {
	TakenAt time.Time     `json:"taken_at"`
	User    *session.User `json:"user,omitempty"`

	Transactions []domain.Transaction `json:"transactions"`
	Accounts     []domain.Account     `json:"accounts"`
	Goals        []domain.Goal        `json:"goals"`
	Budgets      []domain.Budget      `json:"budgets"`
	Scenarios    []domain.Scenario    `json:"scenarios"`

	TotalBalance       float64                `json:"total_balance"`
	MonthlyIncome      float64                `json:"monthly_income"`
	MonthlyExpenses    float64                `json:"monthly_expenses"`
	SpendingByCategory []domain.CategorySpend `json:"spending_by_category"`
}

// Take captures the current state of the service. Derived metrics are read
// through the service so they reflect exactly what the dashboard shows.
func Take(svc *finance.Service, user *session.User) Snapshot {
	return Snapshot{
		TakenAt:            time.Now().UTC(),
		User:               user,
		Transactions:       svc.Transactions(),
		Accounts:           svc.Accounts(),
		Goals:              svc.Goals(),
		Budgets:            svc.Budgets(),
		Scenarios:          svc.Scenarios(),
		TotalBalance:       svc.TotalBalance(),
		MonthlyIncome:      svc.MonthlyIncome(),
		MonthlyExpenses:    svc.MonthlyExpenses(),
		SpendingByCategory: svc.SpendingByCategory(),
	}
}

// Encode renders the snapshot as indented JSON.
func (s Snapshot) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("Encode: %w", err)
	}
	return data, nil
}

// ObjectName builds the archive path for a snapshot, partitioned by date.
func (s Snapshot) ObjectName() string {
	return fmt.Sprintf("snapshots/%s/dashboard-%s.json",
		s.TakenAt.Format("2006/01/02"),
		s.TakenAt.Format("150405"))
}
