package bigquery

import (
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/dvloznov/finance-twin/internal/domain"
)

func civilToTime(d civil.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func transactionFromRow(row *TransactionRow) domain.Transaction {
	return domain.Transaction{
		ID:          row.TransactionID,
		Date:        civilToTime(row.TransactionDate),
		Description: row.Description,
		Amount:      row.Amount,
		Category:    row.Category,
		Type:        domain.TransactionType(row.Type),
	}
}

func rowFromTransaction(tx domain.Transaction, userID string) *TransactionRow {
	return &TransactionRow{
		TransactionID:   tx.ID,
		UserID:          userID,
		TransactionDate: civil.DateOf(tx.Date),
		Description:     tx.Description,
		Amount:          tx.Amount,
		Category:        tx.Category,
		Type:            string(tx.Type),
		CreatedTS:       time.Now().UTC(),
	}
}

func accountFromRow(row *AccountRow) domain.Account {
	account := domain.Account{
		ID:       row.AccountID,
		Name:     row.AccountName,
		Type:     row.AccountType,
		Balance:  row.Balance,
		Currency: row.Currency,
	}
	if row.LastUpdated.Valid {
		account.LastUpdated = row.LastUpdated.Timestamp
	}
	return account
}

func rowFromAccount(account domain.Account, userID string) *AccountRow {
	row := &AccountRow{
		AccountID:   account.ID,
		UserID:      userID,
		AccountName: account.Name,
		AccountType: account.Type,
		Balance:     account.Balance,
		Currency:    account.Currency,
		CreatedTS:   time.Now().UTC(),
	}
	if !account.LastUpdated.IsZero() {
		row.LastUpdated = bigquery.NullTimestamp{Timestamp: account.LastUpdated, Valid: true}
	}
	return row
}

func goalFromRow(row *GoalRow) domain.Goal {
	return domain.Goal{
		ID:            row.GoalID,
		Name:          row.GoalName,
		TargetAmount:  row.TargetAmount,
		CurrentAmount: row.CurrentAmount,
		Deadline:      civilToTime(row.Deadline),
		Category:      row.Category,
	}
}

func rowFromGoal(goal domain.Goal, userID string) *GoalRow {
	return &GoalRow{
		GoalID:        goal.ID,
		UserID:        userID,
		GoalName:      goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		Deadline:      civil.DateOf(goal.Deadline),
		Category:      goal.Category,
		CreatedTS:     time.Now().UTC(),
	}
}

func budgetFromRow(row *BudgetRow) domain.Budget {
	return domain.Budget{
		ID:        row.BudgetID,
		Category:  row.Category,
		Allocated: row.Allocated,
		Spent:     row.Spent,
		Period:    row.Period,
	}
}

func rowFromBudget(budget domain.Budget, userID string) *BudgetRow {
	return &BudgetRow{
		BudgetID:  budget.ID,
		UserID:    userID,
		Category:  budget.Category,
		Allocated: budget.Allocated,
		Spent:     budget.Spent,
		Period:    budget.Period,
		CreatedTS: time.Now().UTC(),
	}
}

func scenarioFromRow(row *ScenarioRow) (domain.Scenario, error) {
	adjustments, err := ParseAdjustments(row.Adjustments)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("scenario %s: adjustments: %w", row.ScenarioID, err)
	}
	impact, err := ParseImpact(row.Impact)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("scenario %s: impact: %w", row.ScenarioID, err)
	}
	return domain.Scenario{
		ID:          row.ScenarioID,
		Name:        row.ScenarioName,
		Description: row.Description,
		Adjustments: adjustments,
		Impact:      impact,
	}, nil
}

func rowFromScenario(scenario domain.Scenario, userID string) (*ScenarioRow, error) {
	adjustments, err := json.Marshal(scenario.Adjustments)
	if err != nil {
		return nil, fmt.Errorf("encoding adjustments: %w", err)
	}
	impact, err := json.Marshal(scenario.Impact)
	if err != nil {
		return nil, fmt.Errorf("encoding impact: %w", err)
	}
	return &ScenarioRow{
		ScenarioID:   scenario.ID,
		UserID:       userID,
		ScenarioName: scenario.Name,
		Description:  scenario.Description,
		Adjustments:  string(adjustments),
		Impact:       string(impact),
		CreatedTS:    time.Now().UTC(),
	}, nil
}

// ParseAdjustments decodes a stored adjustments payload into its typed
// shape. Stored records may carry the payload as a JSON string or as an
// already-structured value, so both are accepted; malformed payloads are
// rejected rather than trusted.
func ParseAdjustments(value any) (domain.Adjustments, error) {
	var adjustments domain.Adjustments
	if err := decodePayload(value, &adjustments); err != nil {
		return domain.Adjustments{}, err
	}
	return adjustments, nil
}

// ParseImpact decodes a stored impact payload, accepting the same forms as
// ParseAdjustments.
func ParseImpact(value any) (domain.Impact, error) {
	var impact domain.Impact
	if err := decodePayload(value, &impact); err != nil {
		return domain.Impact{}, err
	}
	return impact, nil
}

func decodePayload(value any, out any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(v), out); err != nil {
			return fmt.Errorf("malformed JSON payload: %w", err)
		}
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		if err := json.Unmarshal(v, out); err != nil {
			return fmt.Errorf("malformed JSON payload: %w", err)
		}
		return nil
	default:
		// Already-structured value: re-encode through JSON to coerce it
		// into the typed shape.
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("unsupported payload type %T: %w", value, err)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("malformed structured payload: %w", err)
		}
		return nil
	}
}
