package domain

// Adjustments is a set of optional percentage tweaks applied by the scenario
// engine. A nil field means "not adjusted"; a zero value is a real adjustment
// of 0%, so pointers are deliberate here.
type Adjustments struct {
	IncomePct           *float64 `json:"income_pct,omitempty"`
	ExpensesPct         *float64 `json:"expenses_pct,omitempty"`
	SavingsPct          *float64 `json:"savings_pct,omitempty"`
	InvestmentReturnPct *float64 `json:"investment_return_pct,omitempty"`
}

// Impact is the projected outcome of a scenario.
type Impact struct {
	NetWorth           int64 `json:"net_worth"`
	SavingsAfter5Years int64 `json:"savings_after_5_years"`
	RetirementAge      int   `json:"retirement_age"`
}

// Scenario is a named set of adjustments together with the impact the engine
// derived from them. Impact is never hand-set after creation.
type Scenario struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Adjustments Adjustments `json:"adjustments"`
	Impact      Impact      `json:"impact"`
}

// Pct is a convenience for building Adjustments literals.
func Pct(v float64) *float64 {
	return &v
}
