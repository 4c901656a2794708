// Package finance implements the dashboard core: the in-memory entity store
// for a user's financial records and the sync controller that keeps it
// aligned with the persistence layer. One Service is constructed per session
// and passed by reference to its consumers; there is no package-level state.
package finance

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-twin/internal/domain"
	"github.com/dvloznov/finance-twin/internal/metrics"
	"github.com/dvloznov/finance-twin/internal/notify"
	"github.com/dvloznov/finance-twin/internal/repo"
	"github.com/dvloznov/finance-twin/internal/seed"
	"github.com/dvloznov/finance-twin/internal/session"
)

// RepositoryFactory selects the persistence backend for a session: the
// remote store when a user is present, the seed dataset otherwise.
type RepositoryFactory func(ctx context.Context, user *session.User) (repo.Repository, error)

// DefaultRepositoryFactory always returns the seed-backed repository. Mains
// replace it with a factory that builds the remote repository for
// authenticated sessions.
func DefaultRepositoryFactory(ctx context.Context, user *session.User) (repo.Repository, error) {
	return repo.NewSeedRepository(), nil
}

// Service is the single source of truth for the active session's financial
// entities. All mutation goes through it; reads return copies. Collections
// are guarded by a mutex, but remote writes happen outside the lock, so two
// in-flight mutations may land in completion order rather than call order.
type Service struct {
	factory  RepositoryFactory
	notifier notify.Notifier
	log      zerolog.Logger
	now      func() time.Time

	mu           sync.Mutex
	repository   repo.Repository
	transactions []domain.Transaction
	accounts     []domain.Account
	goals        []domain.Goal
	budgets      []domain.Budget
	scenarios    []domain.Scenario
}

// NewService creates a service backed by the given repository factory. The
// collections start on the seed dataset; call Reload to enter a session.
func NewService(factory RepositoryFactory, notifier notify.Notifier, log zerolog.Logger) *Service {
	return &Service{
		factory:      factory,
		notifier:     notifier,
		log:          log,
		now:          time.Now,
		repository:   repo.NewSeedRepository(),
		transactions: seed.Transactions(),
		accounts:     seed.Accounts(),
		goals:        seed.Goals(),
		budgets:      seed.Budgets(),
		scenarios:    seed.Scenarios(),
	}
}

// Reload re-enters the load state machine for the given session identity:
// it selects the backend through the factory and repopulates every
// collection. Called on sign-in, sign-out and startup.
func (s *Service) Reload(ctx context.Context, user *session.User) error {
	repository, err := s.factory(ctx, user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	old := s.repository
	s.repository = repository
	s.mu.Unlock()

	if old != nil && old != repository {
		if err := old.Close(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to close previous repository")
		}
	}

	s.load(ctx)
	return nil
}

// load fetches one snapshot per entity type. An empty remote collection
// falls back to the seed for that collection only; any fetch error reverts
// transactions, accounts, goals and budgets to seed all at once, keeps the
// scenarios the service already had, and surfaces a single notification.
// The dashboard stays usable either way, so load never returns an error.
func (s *Service) load(ctx context.Context) {
	s.mu.Lock()
	repository := s.repository
	s.mu.Unlock()

	var failed bool

	transactions, err := repository.ListTransactions(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load transactions")
		failed = true
	}
	accounts, err := repository.ListAccounts(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load accounts")
		failed = true
	}
	goals, err := repository.ListGoals(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load goals")
		failed = true
	}
	budgets, err := repository.ListBudgets(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load budgets")
		failed = true
	}
	scenarios, err := repository.ListScenarios(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load scenarios")
		failed = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if failed {
		s.transactions = seed.Transactions()
		s.accounts = seed.Accounts()
		s.goals = seed.Goals()
		s.budgets = seed.Budgets()
		// Scenarios keep whatever the service already had.
		s.notifier.Error("Failed to load your financial data, showing default data instead")
		return
	}

	s.transactions = orSeedTransactions(transactions)
	s.accounts = orSeedAccounts(accounts)
	s.goals = orSeedGoals(goals)
	s.budgets = orSeedBudgets(budgets)
	s.scenarios = orSeedScenarios(scenarios)
}

func orSeedTransactions(v []domain.Transaction) []domain.Transaction {
	if len(v) == 0 {
		return seed.Transactions()
	}
	return v
}

func orSeedAccounts(v []domain.Account) []domain.Account {
	if len(v) == 0 {
		return seed.Accounts()
	}
	return v
}

func orSeedGoals(v []domain.Goal) []domain.Goal {
	if len(v) == 0 {
		return seed.Goals()
	}
	return v
}

func orSeedBudgets(v []domain.Budget) []domain.Budget {
	if len(v) == 0 {
		return seed.Budgets()
	}
	return v
}

func orSeedScenarios(v []domain.Scenario) []domain.Scenario {
	if len(v) == 0 {
		return seed.Scenarios()
	}
	return v
}

// Close releases the active repository.
func (s *Service) Close() error {
	s.mu.Lock()
	repository := s.repository
	s.mu.Unlock()
	if repository == nil {
		return nil
	}
	return repository.Close()
}

// Transactions returns a copy of the transaction history, most recent first.
func (s *Service) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Accounts returns a copy of the accounts.
func (s *Service) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Goals returns a copy of the goals.
func (s *Service) Goals() []domain.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

// Budgets returns a copy of the budgets.
func (s *Service) Budgets() []domain.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Budget, len(s.budgets))
	copy(out, s.budgets)
	return out
}

// Scenarios returns a copy of the scenario list, seed scenarios first.
func (s *Service) Scenarios() []domain.Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Scenario, len(s.scenarios))
	copy(out, s.scenarios)
	return out
}

// TotalBalance recomputes the sum of account balances on every call.
func (s *Service) TotalBalance() float64 {
	return metrics.TotalBalance(s.Accounts())
}

// MonthlyIncome recomputes the current calendar month's income at call time.
func (s *Service) MonthlyIncome() float64 {
	return metrics.MonthlyIncome(s.Transactions(), s.now())
}

// MonthlyExpenses recomputes the current calendar month's expenses at call
// time.
func (s *Service) MonthlyExpenses() float64 {
	return metrics.MonthlyExpenses(s.Transactions(), s.now())
}

// SpendingByCategory recomputes the expense-by-category aggregate on every
// call. The order of the result is unspecified.
func (s *Service) SpendingByCategory() []domain.CategorySpend {
	return metrics.SpendingByCategory(s.Transactions())
}
