package repo

import (
	"context"

	"github.com/dvloznov/finance-twin/internal/domain"
	"github.com/dvloznov/finance-twin/internal/seed"
)

// SeedRepository serves the built-in default dataset. It backs the dashboard
// when no session exists: reads succeed with seed data, writes fail with
// ErrReadOnly.
type SeedRepository struct{}

// NewSeedRepository creates a repository over the default dataset.
func NewSeedRepository() *SeedRepository {
	return &SeedRepository{}
}

func (r *SeedRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return seed.Transactions(), nil
}

func (r *SeedRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return seed.Accounts(), nil
}

func (r *SeedRepository) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	return seed.Goals(), nil
}

func (r *SeedRepository) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	return seed.Budgets(), nil
}

func (r *SeedRepository) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	return seed.Scenarios(), nil
}

func (r *SeedRepository) InsertTransaction(ctx context.Context, tx domain.Transaction) error {
	return ErrReadOnly
}

func (r *SeedRepository) InsertGoal(ctx context.Context, goal domain.Goal) error {
	return ErrReadOnly
}

func (r *SeedRepository) InsertScenario(ctx context.Context, scenario domain.Scenario) error {
	return ErrReadOnly
}

func (r *SeedRepository) UpdateGoalAmount(ctx context.Context, goalID string, currentAmount float64) error {
	return ErrReadOnly
}

func (r *SeedRepository) UpdateAccountBalance(ctx context.Context, accountID string, balance float64) error {
	return ErrReadOnly
}

func (r *SeedRepository) Close() error {
	return nil
}

var _ Repository = (*SeedRepository)(nil)
