package bigquery

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/finance-twin/internal/domain"
)

func TestParseAdjustments(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    domain.Adjustments
		wantErr bool
	}{
		{
			name:  "serialized string form",
			value: `{"income_pct":10,"savings_pct":15}`,
			want:  domain.Adjustments{IncomePct: domain.Pct(10), SavingsPct: domain.Pct(15)},
		},
		{
			name:  "already-structured form",
			value: map[string]any{"expenses_pct": -10.0},
			want:  domain.Adjustments{ExpensesPct: domain.Pct(-10)},
		},
		{
			name:  "empty string",
			value: "",
			want:  domain.Adjustments{},
		},
		{
			name:  "nil payload",
			value: nil,
			want:  domain.Adjustments{},
		},
		{
			name:    "malformed payload rejected",
			value:   `{"income_pct":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAdjustments(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAdjustments() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !adjustmentsEqual(got, tt.want) {
				t.Errorf("ParseAdjustments() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseImpact(t *testing.T) {
	got, err := ParseImpact(`{"net_worth":320000,"savings_after_5_years":98000,"retirement_age":62}`)
	if err != nil {
		t.Fatalf("ParseImpact() error: %v", err)
	}
	want := domain.Impact{NetWorth: 320000, SavingsAfter5Years: 98000, RetirementAge: 62}
	if got != want {
		t.Errorf("ParseImpact() = %+v, want %+v", got, want)
	}

	if _, err := ParseImpact("not json"); err == nil {
		t.Error("ParseImpact accepted a malformed payload")
	}
}

func TestScenarioRowRoundTrip(t *testing.T) {
	scenario := domain.Scenario{
		ID:          "scenario-42",
		Name:        "Custom Scenario",
		Description: "Your custom financial plan",
		Adjustments: domain.Adjustments{
			SavingsPct:          domain.Pct(25),
			InvestmentReturnPct: domain.Pct(8),
		},
		Impact: domain.Impact{NetWorth: 467500, SavingsAfter5Years: 121800, RetirementAge: 54},
	}

	row, err := rowFromScenario(scenario, "user-1")
	if err != nil {
		t.Fatalf("rowFromScenario() error: %v", err)
	}
	if row.UserID != "user-1" {
		t.Errorf("UserID = %q, want owner stamp", row.UserID)
	}

	got, err := scenarioFromRow(row)
	if err != nil {
		t.Fatalf("scenarioFromRow() error: %v", err)
	}
	if got.ID != scenario.ID || got.Name != scenario.Name || got.Impact != scenario.Impact {
		t.Errorf("round trip = %+v, want %+v", got, scenario)
	}
	if !adjustmentsEqual(got.Adjustments, scenario.Adjustments) {
		t.Errorf("adjustments = %+v, want %+v", got.Adjustments, scenario.Adjustments)
	}
}

func TestTransactionRowMapping(t *testing.T) {
	tx := domain.Transaction{
		ID:          "tr-1",
		Date:        time.Date(2023, time.May, 15, 0, 0, 0, 0, time.UTC),
		Description: "Salary Deposit",
		Amount:      4200,
		Category:    "Income",
		Type:        domain.TransactionIncome,
	}

	row := rowFromTransaction(tx, "user-1")
	if row.TransactionDate != civil.DateOf(tx.Date) {
		t.Errorf("TransactionDate = %v, want %v", row.TransactionDate, civil.DateOf(tx.Date))
	}
	if row.Type != "income" {
		t.Errorf("Type = %q, want income", row.Type)
	}

	back := transactionFromRow(row)
	if back.ID != tx.ID || back.Amount != tx.Amount || back.Type != tx.Type || !back.Date.Equal(tx.Date) {
		t.Errorf("round trip = %+v, want %+v", back, tx)
	}
}

func adjustmentsEqual(a, b domain.Adjustments) bool {
	eq := func(x, y *float64) bool {
		if x == nil || y == nil {
			return x == y
		}
		return *x == *y
	}
	return eq(a.IncomePct, b.IncomePct) &&
		eq(a.ExpensesPct, b.ExpensesPct) &&
		eq(a.SavingsPct, b.SavingsPct) &&
		eq(a.InvestmentReturnPct, b.InvestmentReturnPct)
}
