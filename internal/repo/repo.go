// Package repo defines the persistence boundary of the dashboard core. The
// service talks to a Repository and stays unaware of whether records come
// from the remote store or from the built-in seed dataset.
package repo

import (
	"context"
	"errors"

	"github.com/dvloznov/finance-twin/internal/domain"
)

// ErrNotFound is returned when an update targets a record that does not
// exist, e.g. a goal ID with no matching row.
var ErrNotFound = errors.New("record not found")

// ErrReadOnly is returned by write operations on the seed-backed repository.
// There is no session to persist against, so writes are rejected before any
// network activity could happen.
var ErrReadOnly = errors.New("repository is read-only")

// Repository is the narrow persistence contract of the dashboard core.
// List operations return collections owner-scoped to the active user, newest
// first. Implementations: the BigQuery-backed remote store and the in-memory
// seed dataset.
type Repository interface {
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
	ListScenarios(ctx context.Context) ([]domain.Scenario, error)

	InsertTransaction(ctx context.Context, tx domain.Transaction) error
	InsertGoal(ctx context.Context, goal domain.Goal) error
	InsertScenario(ctx context.Context, scenario domain.Scenario) error

	// UpdateGoalAmount sets a goal's current_amount; ErrNotFound if the ID is
	// unknown.
	UpdateGoalAmount(ctx context.Context, goalID string, currentAmount float64) error
	// UpdateAccountBalance sets an account's balance; ErrNotFound if the ID
	// is unknown.
	UpdateAccountBalance(ctx context.Context, accountID string, balance float64) error

	// Close releases any underlying clients.
	Close() error
}
