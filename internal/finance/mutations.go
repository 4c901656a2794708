package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dvloznov/finance-twin/internal/domain"
	"github.com/dvloznov/finance-twin/internal/projection"
	"github.com/dvloznov/finance-twin/internal/repo"
)

// Mutations persist remote-first: the repository write happens before any
// in-memory change, so a failed write leaves no residue in the store. The
// one deliberate exception is RunScenario, whose projection is cheap and
// safe to keep even when the audit trail write fails.

// AddTransaction records a transaction against the default account, which is
// the first account in the collection. It is a convenience wrapper around
// AddTransactionTo; there is no per-transaction account selection in the
// dashboard UI.
func (s *Service) AddTransaction(ctx context.Context, input domain.TransactionInput) (*domain.Transaction, error) {
	s.mu.Lock()
	if len(s.accounts) == 0 {
		s.mu.Unlock()
		s.notifier.Error("No account available to apply the transaction to")
		return nil, fmt.Errorf("AddTransaction: no accounts")
	}
	accountID := s.accounts[0].ID
	s.mu.Unlock()

	return s.AddTransactionTo(ctx, accountID, input)
}

// AddTransactionTo records a transaction against a specific account: income
// adds the amount to its balance, expense subtracts it. The store assigns
// the ID and does not validate the amount; callers own input validity.
func (s *Service) AddTransactionTo(ctx context.Context, accountID string, input domain.TransactionInput) (*domain.Transaction, error) {
	s.mu.Lock()
	repository := s.repository
	account, ok := s.findAccount(accountID)
	s.mu.Unlock()

	if !ok {
		s.notifier.Error("Account not found")
		return nil, fmt.Errorf("AddTransactionTo: account %q: %w", accountID, repo.ErrNotFound)
	}

	tx := domain.Transaction{
		ID:          uuid.NewString(),
		Date:        input.Date,
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Type:        input.Type,
	}

	delta := input.Amount
	if input.Type == domain.TransactionExpense {
		delta = -input.Amount
	}

	if err := repository.InsertTransaction(ctx, tx); err != nil {
		s.notifyWriteFailure(err, "Sign in to record transactions", "Failed to save transaction")
		return nil, fmt.Errorf("AddTransactionTo: inserting transaction: %w", err)
	}
	if err := repository.UpdateAccountBalance(ctx, accountID, account.Balance+delta); err != nil {
		s.notifyWriteFailure(err, "Sign in to record transactions", "Failed to update account balance")
		return nil, fmt.Errorf("AddTransactionTo: updating balance: %w", err)
	}

	s.mu.Lock()
	s.transactions = append([]domain.Transaction{tx}, s.transactions...)
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i].Balance += delta
			s.accounts[i].LastUpdated = s.now()
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Transaction added")
	return &tx, nil
}

// CreateGoal adds a new savings goal. Goals are not deduplicated by name.
func (s *Service) CreateGoal(ctx context.Context, input domain.GoalInput) (*domain.Goal, error) {
	s.mu.Lock()
	repository := s.repository
	s.mu.Unlock()

	goal := domain.Goal{
		ID:            uuid.NewString(),
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: input.CurrentAmount,
		Deadline:      input.Deadline,
		Category:      input.Category,
	}

	if err := repository.InsertGoal(ctx, goal); err != nil {
		s.notifyWriteFailure(err, "Sign in to create goals", "Failed to save goal")
		return nil, fmt.Errorf("CreateGoal: %w", err)
	}

	s.mu.Lock()
	s.goals = append(s.goals, goal)
	s.mu.Unlock()

	s.notifier.Success("Goal created")
	return &goal, nil
}

// UpdateGoal adds amount (which may be negative) to a goal's progress.
// Progress is never capped at the target. Returns repo.ErrNotFound when no
// goal matches the ID; no partial mutation occurs.
func (s *Service) UpdateGoal(ctx context.Context, goalID string, amount float64) error {
	s.mu.Lock()
	repository := s.repository
	var current float64
	found := false
	for _, g := range s.goals {
		if g.ID == goalID {
			current = g.CurrentAmount
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		s.notifier.Error("Goal not found")
		return fmt.Errorf("UpdateGoal: goal %q: %w", goalID, repo.ErrNotFound)
	}

	if err := repository.UpdateGoalAmount(ctx, goalID, current+amount); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.notifier.Error("Goal not found")
		} else {
			s.notifyWriteFailure(err, "Sign in to update goals", "Failed to update goal")
		}
		return fmt.Errorf("UpdateGoal: %w", err)
	}

	s.mu.Lock()
	for i := range s.goals {
		if s.goals[i].ID == goalID {
			s.goals[i].CurrentAmount += amount
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Goal updated")
	return nil
}

// RunScenario projects the impact of a set of adjustments, stores the
// resulting scenario and returns it. The projection is computed locally
// before any persistence; if the remote write fails the scenario is kept
// anyway, so a flaky backend never costs the user their result.
func (s *Service) RunScenario(ctx context.Context, adjustments domain.Adjustments) (*domain.Scenario, error) {
	s.mu.Lock()
	repository := s.repository
	s.mu.Unlock()

	scenario := domain.Scenario{
		ID:          uuid.NewString(),
		Name:        "Custom Scenario",
		Description: "Your custom financial plan",
		Adjustments: adjustments,
		Impact:      projection.Project(adjustments),
	}

	if err := repository.InsertScenario(ctx, scenario); err != nil {
		if errors.Is(err, repo.ErrReadOnly) {
			s.notifier.Info("Working offline, scenario saved locally only")
		} else {
			s.log.Warn().Err(err).Str("scenario_id", scenario.ID).Msg("Failed to persist scenario")
			s.notifier.Error("Failed to save scenario, keeping local result")
		}
	} else {
		s.notifier.Success("Scenario saved")
	}

	s.mu.Lock()
	s.scenarios = append(s.scenarios, scenario)
	s.mu.Unlock()

	return &scenario, nil
}

// findAccount must be called with the mutex held.
func (s *Service) findAccount(accountID string) (domain.Account, bool) {
	for _, a := range s.accounts {
		if a.ID == accountID {
			return a, true
		}
	}
	return domain.Account{}, false
}

func (s *Service) notifyWriteFailure(err error, readOnlyMsg, failureMsg string) {
	if errors.Is(err, repo.ErrReadOnly) {
		s.notifier.Error(readOnlyMsg)
		return
	}
	s.log.Warn().Err(err).Msg("Remote write failed")
	s.notifier.Error(failureMsg)
}
