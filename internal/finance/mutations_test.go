package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-twin/internal/domain"
	"github.com/dvloznov/finance-twin/internal/notify"
	"github.com/dvloznov/finance-twin/internal/projection"
	"github.com/dvloznov/finance-twin/internal/repo"
	"github.com/dvloznov/finance-twin/internal/seed"
)

func repoWithBasics() *mockRepo {
	r := newMockRepo()
	r.accounts = []domain.Account{
		{ID: "acc-first", Name: "Checking", Balance: 1000},
		{ID: "acc-second", Name: "Savings", Balance: 5000},
	}
	r.transactions = []domain.Transaction{
		{ID: "tr-existing", Date: time.Now(), Amount: 50, Type: domain.TransactionExpense, Category: "Dining"},
	}
	r.goals = []domain.Goal{
		{ID: "goal-1", Name: "Emergency Fund", TargetAmount: 20000, CurrentAmount: 12000},
	}
	r.budgets = []domain.Budget{{ID: "budget-1"}}
	r.scenarios = []domain.Scenario{{ID: "scenario-1"}}
	return r
}

func TestAddTransaction_IncomeIncreasesFirstAccount(t *testing.T) {
	r := repoWithBasics()
	svc, recorder := newTestService(t, r)

	tx, err := svc.AddTransaction(context.Background(), domain.TransactionInput{
		Date:        time.Now(),
		Description: "Salary",
		Amount:      100,
		Category:    "Income",
		Type:        domain.TransactionIncome,
	})
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if tx.ID == "" {
		t.Error("store did not assign an ID")
	}

	accounts := svc.Accounts()
	if accounts[0].Balance != 1100 {
		t.Errorf("first account balance = %v, want 1100", accounts[0].Balance)
	}
	if accounts[1].Balance != 5000 {
		t.Errorf("second account balance = %v, want untouched 5000", accounts[1].Balance)
	}

	// New transaction is prepended: most recent first.
	transactions := svc.Transactions()
	if transactions[0].ID != tx.ID {
		t.Errorf("head of history = %q, want new transaction %q", transactions[0].ID, tx.ID)
	}

	// Remote got the write before memory changed.
	if len(r.insertedTransactions) != 1 {
		t.Fatalf("remote inserts = %d, want 1", len(r.insertedTransactions))
	}
	if got := r.updatedBalances["acc-first"]; got != 1100 {
		t.Errorf("remote balance update = %v, want 1100", got)
	}

	if n := recorder.ByLevel(notify.LevelSuccess); len(n) != 1 {
		t.Errorf("success notifications = %+v, want exactly 1", n)
	}
}

func TestAddTransaction_ExpenseDecreasesFirstAccount(t *testing.T) {
	r := repoWithBasics()
	svc, _ := newTestService(t, r)

	if _, err := svc.AddTransaction(context.Background(), domain.TransactionInput{
		Date:   time.Now(),
		Amount: 100,
		Type:   domain.TransactionExpense,
	}); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	if got := svc.Accounts()[0].Balance; got != 900 {
		t.Errorf("first account balance = %v, want 900", got)
	}
}

func TestAddTransactionTo_ExplicitAccount(t *testing.T) {
	r := repoWithBasics()
	svc, _ := newTestService(t, r)

	if _, err := svc.AddTransactionTo(context.Background(), "acc-second", domain.TransactionInput{
		Date:   time.Now(),
		Amount: 250,
		Type:   domain.TransactionIncome,
	}); err != nil {
		t.Fatalf("AddTransactionTo failed: %v", err)
	}

	accounts := svc.Accounts()
	if accounts[0].Balance != 1000 {
		t.Errorf("first account balance = %v, want untouched 1000", accounts[0].Balance)
	}
	if accounts[1].Balance != 5250 {
		t.Errorf("second account balance = %v, want 5250", accounts[1].Balance)
	}
}

func TestAddTransactionTo_UnknownAccount(t *testing.T) {
	r := repoWithBasics()
	svc, recorder := newTestService(t, r)

	_, err := svc.AddTransactionTo(context.Background(), "acc-missing", domain.TransactionInput{Amount: 1})
	if !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if len(r.insertedTransactions) != 0 {
		t.Error("remote insert happened for unknown account")
	}
	if n := recorder.ByLevel(notify.LevelError); len(n) != 1 {
		t.Errorf("error notifications = %+v, want exactly 1", n)
	}
}

func TestAddTransaction_RemoteFailureLeavesNoResidue(t *testing.T) {
	r := repoWithBasics()
	r.insertTransactionErr = errRemote
	svc, recorder := newTestService(t, r)

	before := len(svc.Transactions())

	_, err := svc.AddTransaction(context.Background(), domain.TransactionInput{
		Date: time.Now(), Amount: 100, Type: domain.TransactionIncome,
	})
	if err == nil {
		t.Fatal("expected error from failing remote write")
	}

	// Writes are not optimistic: nothing changed in memory.
	if got := len(svc.Transactions()); got != before {
		t.Errorf("transactions = %d, want unchanged %d", got, before)
	}
	if got := svc.Accounts()[0].Balance; got != 1000 {
		t.Errorf("balance = %v, want unchanged 1000", got)
	}
	if n := recorder.ByLevel(notify.LevelError); len(n) != 1 {
		t.Errorf("error notifications = %+v, want exactly 1", n)
	}
}

func TestCreateGoal(t *testing.T) {
	r := repoWithBasics()
	svc, _ := newTestService(t, r)

	goal, err := svc.CreateGoal(context.Background(), domain.GoalInput{
		Name: "Vacation", TargetAmount: 5000, CurrentAmount: 0,
	})
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	if goal.ID == "" {
		t.Error("store did not assign an ID")
	}
	if got := len(svc.Goals()); got != 2 {
		t.Errorf("goals = %d, want 2", got)
	}
	if len(r.insertedGoals) != 1 {
		t.Errorf("remote inserts = %d, want 1", len(r.insertedGoals))
	}

	// No dedup by name: creating the same goal twice yields two goals.
	if _, err := svc.CreateGoal(context.Background(), domain.GoalInput{Name: "Vacation", TargetAmount: 5000}); err != nil {
		t.Fatalf("second CreateGoal failed: %v", err)
	}
	if got := len(svc.Goals()); got != 3 {
		t.Errorf("goals after duplicate = %d, want 3", got)
	}
}

func TestUpdateGoal(t *testing.T) {
	r := repoWithBasics()
	svc, _ := newTestService(t, r)

	if err := svc.UpdateGoal(context.Background(), "goal-1", 500); err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}
	if got := svc.Goals()[0].CurrentAmount; got != 12500 {
		t.Errorf("CurrentAmount = %v, want 12500", got)
	}
	if got := r.updatedGoalAmounts["goal-1"]; got != 12500 {
		t.Errorf("remote update = %v, want 12500", got)
	}

	// Negative contributions are allowed.
	if err := svc.UpdateGoal(context.Background(), "goal-1", -300); err != nil {
		t.Fatalf("UpdateGoal(-300) failed: %v", err)
	}
	if got := svc.Goals()[0].CurrentAmount; got != 12200 {
		t.Errorf("CurrentAmount = %v, want 12200", got)
	}
}

func TestUpdateGoal_NotClampedToTarget(t *testing.T) {
	r := repoWithBasics()
	svc, _ := newTestService(t, r)

	if err := svc.UpdateGoal(context.Background(), "goal-1", 50000); err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}
	if got := svc.Goals()[0].CurrentAmount; got != 62000 {
		t.Errorf("CurrentAmount = %v, want 62000 (beyond the 20000 target)", got)
	}
}

func TestUpdateGoal_UnknownID(t *testing.T) {
	r := repoWithBasics()
	svc, recorder := newTestService(t, r)

	err := svc.UpdateGoal(context.Background(), "goal-unknown", 50)
	if !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	// No partial mutation.
	if got := svc.Goals()[0].CurrentAmount; got != 12000 {
		t.Errorf("CurrentAmount = %v, want unchanged 12000", got)
	}
	if len(r.updatedGoalAmounts) != 0 {
		t.Error("remote update happened for unknown goal")
	}
	if n := recorder.ByLevel(notify.LevelError); len(n) != 1 {
		t.Errorf("error notifications = %+v, want exactly 1", n)
	}
}

func TestRunScenario_PersistsAndStores(t *testing.T) {
	r := repoWithBasics()
	svc, recorder := newTestService(t, r)

	adj := domain.Adjustments{SavingsPct: domain.Pct(15)}
	scenario, err := svc.RunScenario(context.Background(), adj)
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}

	if scenario.Impact != projection.Project(adj) {
		t.Errorf("impact = %+v, want engine output %+v", scenario.Impact, projection.Project(adj))
	}
	if len(r.insertedScenarios) != 1 {
		t.Errorf("remote inserts = %d, want 1", len(r.insertedScenarios))
	}

	scenarios := svc.Scenarios()
	if scenarios[len(scenarios)-1].ID != scenario.ID {
		t.Error("scenario not appended to the list")
	}
	if n := recorder.ByLevel(notify.LevelSuccess); len(n) != 1 {
		t.Errorf("success notifications = %+v, want exactly 1", n)
	}
}

func TestRunScenario_RemoteFailureKeepsLocalResult(t *testing.T) {
	r := repoWithBasics()
	r.insertScenarioErr = errRemote
	svc, recorder := newTestService(t, r)

	before := len(svc.Scenarios())

	scenario, err := svc.RunScenario(context.Background(), domain.Adjustments{IncomePct: domain.Pct(10)})
	if err != nil {
		t.Fatalf("RunScenario must not fail on a remote write error, got %v", err)
	}
	if scenario == nil {
		t.Fatal("RunScenario returned nil scenario")
	}
	if got := len(svc.Scenarios()); got != before+1 {
		t.Errorf("scenarios = %d, want %d", got, before+1)
	}
	if n := recorder.ByLevel(notify.LevelError); len(n) != 1 {
		t.Errorf("error notifications = %+v, want exactly 1", n)
	}
}

func TestUnauthenticatedMutations(t *testing.T) {
	// Seed-backed repository: writes are rejected before any network call.
	recorder := notify.NewRecorder()
	svc := NewService(DefaultRepositoryFactory, recorder, zerolog.Nop())

	if _, err := svc.AddTransaction(context.Background(), domain.TransactionInput{
		Amount: 100, Type: domain.TransactionIncome,
	}); !errors.Is(err, repo.ErrReadOnly) {
		t.Errorf("AddTransaction error = %v, want ErrReadOnly", err)
	}
	if got, want := svc.Accounts()[0].Balance, seed.Accounts()[0].Balance; got != want {
		t.Errorf("balance = %v, want unchanged seed %v", got, want)
	}

	if _, err := svc.CreateGoal(context.Background(), domain.GoalInput{Name: "X", TargetAmount: 1}); !errors.Is(err, repo.ErrReadOnly) {
		t.Errorf("CreateGoal error = %v, want ErrReadOnly", err)
	}
	if got, want := len(svc.Goals()), len(seed.Goals()); got != want {
		t.Errorf("goals = %d, want unchanged %d", got, want)
	}

	if err := svc.UpdateGoal(context.Background(), "goal-1", 10); !errors.Is(err, repo.ErrReadOnly) {
		t.Errorf("UpdateGoal error = %v, want ErrReadOnly", err)
	}

	// RunScenario is the exception: it still computes and stores locally.
	before := len(svc.Scenarios())
	scenario, err := svc.RunScenario(context.Background(), domain.Adjustments{SavingsPct: domain.Pct(5)})
	if err != nil {
		t.Fatalf("RunScenario failed offline: %v", err)
	}
	if scenario == nil || len(svc.Scenarios()) != before+1 {
		t.Error("offline scenario was not stored")
	}
	if n := recorder.ByLevel(notify.LevelInfo); len(n) != 1 {
		t.Errorf("info notifications = %+v, want exactly 1", n)
	}
}

func TestConcurrentMutationsComplete(t *testing.T) {
	r := repoWithBasics()
	svc, _ := newTestService(t, r)

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := svc.AddTransaction(context.Background(), domain.TransactionInput{
				Date: time.Now(), Amount: 10, Type: domain.TransactionExpense,
			})
			done <- err
		}()
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent AddTransaction failed: %v", err)
		}
	}

	// In-memory ordering reflects completion order, but the net balance
	// effect is exact.
	if got := svc.Accounts()[0].Balance; got != 900 {
		t.Errorf("balance = %v, want 900", got)
	}
	if got := len(svc.Transactions()); got != 11 {
		t.Errorf("transactions = %d, want 11", got)
	}
}
