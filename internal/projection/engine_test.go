package projection

import (
	"math"
	"testing"

	"github.com/dvloznov/finance-twin/internal/domain"
)

func TestProject_NoAdjustments(t *testing.T) {
	got := Project(domain.Adjustments{})

	if got.NetWorth != BaseNetWorth {
		t.Errorf("NetWorth = %d, want %d", got.NetWorth, BaseNetWorth)
	}
	if got.SavingsAfter5Years != BaseSavings {
		t.Errorf("SavingsAfter5Years = %d, want %d", got.SavingsAfter5Years, BaseSavings)
	}
	if got.RetirementAge != BaseRetirementAge {
		t.Errorf("RetirementAge = %d, want %d", got.RetirementAge, BaseRetirementAge)
	}
}

func TestProject_Deterministic(t *testing.T) {
	adj := domain.Adjustments{
		IncomePct:           domain.Pct(12),
		ExpensesPct:         domain.Pct(-5),
		SavingsPct:          domain.Pct(20),
		InvestmentReturnPct: domain.Pct(7),
	}

	first := Project(adj)
	for i := 0; i < 10; i++ {
		if got := Project(adj); got != first {
			t.Fatalf("Project() not deterministic: run %d got %+v, first run %+v", i, got, first)
		}
	}
}

func TestProject_SavingsHalfWeight(t *testing.T) {
	// A 15% savings increase touches savings fully (÷100) but retirement age
	// only at half weight (÷200).
	got := Project(domain.Adjustments{SavingsPct: domain.Pct(15)})

	if got.NetWorth != 250000 {
		t.Errorf("NetWorth = %d, want 250000 (savings does not move net worth)", got.NetWorth)
	}
	if got.SavingsAfter5Years != 69000 {
		t.Errorf("SavingsAfter5Years = %d, want 69000", got.SavingsAfter5Years)
	}
	if got.RetirementAge != 64 {
		t.Errorf("RetirementAge = %d, want 64", got.RetirementAge)
	}
}

func TestProject_CompositeScenario(t *testing.T) {
	// Assert against the formula rather than hand-computed literals so a
	// transcription slip cannot hide in the expectations.
	savings, expenses, invest := 25.0, -10.0, 8.0
	got := Project(domain.Adjustments{
		SavingsPct:          &savings,
		ExpensesPct:         &expenses,
		InvestmentReturnPct: &invest,
	})

	netWorthImpact := 1.0 - expenses/100 + (invest/100)*2
	savingsImpact := 1.0 - expenses/100 + savings/100 + (invest/100)*2
	retirementShift := expenses/100 - savings/200 - invest/100

	wantNetWorth := int64(math.Round(BaseNetWorth * netWorthImpact))
	wantSavings := int64(math.Round(BaseSavings * savingsImpact))
	wantAge := int(math.Round(BaseRetirementAge + retirementShift*10))
	if wantAge < MinRetirementAge {
		wantAge = MinRetirementAge
	}

	if got.NetWorth != wantNetWorth {
		t.Errorf("NetWorth = %d, want %d", got.NetWorth, wantNetWorth)
	}
	if got.SavingsAfter5Years != wantSavings {
		t.Errorf("SavingsAfter5Years = %d, want %d", got.SavingsAfter5Years, wantSavings)
	}
	if got.RetirementAge != wantAge {
		t.Errorf("RetirementAge = %d, want %d", got.RetirementAge, wantAge)
	}
}

func TestProject_RetirementAgeFloor(t *testing.T) {
	tests := []struct {
		name string
		adj  domain.Adjustments
	}{
		{"extreme investment return", domain.Adjustments{InvestmentReturnPct: domain.Pct(1000)}},
		{"extreme income", domain.Adjustments{IncomePct: domain.Pct(5000)}},
		{
			"everything at once",
			domain.Adjustments{
				IncomePct:           domain.Pct(400),
				ExpensesPct:         domain.Pct(-90),
				SavingsPct:          domain.Pct(300),
				InvestmentReturnPct: domain.Pct(250),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.adj)
			if got.RetirementAge != MinRetirementAge {
				t.Errorf("RetirementAge = %d, want floor %d", got.RetirementAge, MinRetirementAge)
			}
		})
	}
}

func TestProject_ExpenseIncreaseHurts(t *testing.T) {
	got := Project(domain.Adjustments{ExpensesPct: domain.Pct(20)})

	if got.NetWorth >= BaseNetWorth {
		t.Errorf("NetWorth = %d, want below base %d", got.NetWorth, BaseNetWorth)
	}
	if got.RetirementAge <= BaseRetirementAge {
		t.Errorf("RetirementAge = %d, want above base %d", got.RetirementAge, BaseRetirementAge)
	}
}

func TestProject_ZeroValuedAdjustmentIsNoop(t *testing.T) {
	// A present-but-zero adjustment must behave like the base case; only the
	// final numbers matter, not whether the field was set.
	got := Project(domain.Adjustments{IncomePct: domain.Pct(0), SavingsPct: domain.Pct(0)})
	want := Project(domain.Adjustments{})

	if got != want {
		t.Errorf("Project(zeroed) = %+v, want %+v", got, want)
	}
}
