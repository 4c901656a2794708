package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-twin/internal/advisor"
	"github.com/dvloznov/finance-twin/internal/domain"
	"github.com/dvloznov/finance-twin/internal/finance"
	infraBQ "github.com/dvloznov/finance-twin/internal/infra/bigquery"
	"github.com/dvloznov/finance-twin/internal/logger"
	"github.com/dvloznov/finance-twin/internal/notify"
	"github.com/dvloznov/finance-twin/internal/repo"
	"github.com/dvloznov/finance-twin/internal/seed"
	"github.com/dvloznov/finance-twin/internal/session"
	"github.com/dvloznov/finance-twin/internal/snapshot"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "summary":
		runSummary(log)
	case "simulate":
		runSimulate(log)
	case "add":
		runAdd(log)
	case "export":
		runExport(log)
	case "describe":
		runDescribe(log)
	case "seed-remote":
		runSeedRemote(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Finance Twin CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  summary      Print account totals, monthly flows and category spend")
	fmt.Println("  simulate     Run a what-if scenario projection")
	fmt.Println("  add          Record a transaction against an account")
	fmt.Println("  export       Export a dashboard snapshot to GCS or a local directory")
	fmt.Println("  describe     Generate a narrative for a stored scenario")
	fmt.Println("  seed-remote  Populate the remote dataset with the seed records")
	fmt.Println("  help         Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
	fmt.Println("\nCommands that touch the remote store take -project, -dataset and")
	fmt.Println("-user-id; without -user-id they run on the built-in seed data.")
}

// sessionFlags registers the backend-selection flags shared by every command
// that opens the dashboard service.
func sessionFlags(fs *flag.FlagSet) (project, dataset, userID *string) {
	project = fs.String("project", os.Getenv("GCP_PROJECT"), "GCP project ID")
	dataset = fs.String("dataset", os.Getenv("BQ_DATASET"), "BigQuery dataset ID")
	userID = fs.String("user-id", os.Getenv("DASHBOARD_USER_ID"), "Owner of the remote records; empty uses seed data")
	return project, dataset, userID
}

// openService builds a service for the given backend selection and runs the
// initial load.
func openService(ctx context.Context, log zerolog.Logger, project, dataset, userID string) (*finance.Service, *session.User, error) {
	var user *session.User
	if userID != "" {
		if project == "" || dataset == "" {
			return nil, nil, fmt.Errorf("openService: -user-id requires -project and -dataset")
		}
		user = &session.User{ID: userID}
	}

	factory := func(ctx context.Context, u *session.User) (repo.Repository, error) {
		if u == nil {
			return repo.NewSeedRepository(), nil
		}
		return infraBQ.NewRepository(ctx, infraBQ.Config{ProjectID: project, DatasetID: dataset}, u.ID)
	}

	svc := finance.NewService(factory, notify.NewLogNotifier(log), log)
	if err := svc.Reload(ctx, user); err != nil {
		return nil, nil, err
	}
	return svc, user, nil
}

func runSummary(log zerolog.Logger) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	project, dataset, userID := sessionFlags(fs)
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	svc, _, err := openService(ctx, log, *project, *dataset, *userID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open dashboard")
	}
	defer svc.Close()

	fmt.Println("\n=== Dashboard Summary ===")
	fmt.Printf("Total balance:    %.2f\n", svc.TotalBalance())
	fmt.Printf("Monthly income:   %.2f\n", svc.MonthlyIncome())
	fmt.Printf("Monthly expenses: %.2f\n", svc.MonthlyExpenses())

	fmt.Println("\nAccounts:")
	for _, account := range svc.Accounts() {
		fmt.Printf("  %-12s %-12s %12.2f %s\n", account.Name, account.Type, account.Balance, account.Currency)
	}

	spend := svc.SpendingByCategory()
	if len(spend) > 0 {
		fmt.Println("\nSpending by category:")
		for _, entry := range spend {
			fmt.Printf("  %-16s %10.2f\n", entry.Category, entry.Amount)
		}
	}
	fmt.Println()
}

func runSimulate(log zerolog.Logger) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	project, dataset, userID := sessionFlags(fs)
	income := fs.Float64("income", 0, "Income change in percent")
	expenses := fs.Float64("expenses", 0, "Expenses change in percent")
	savings := fs.Float64("savings", 0, "Savings rate change in percent")
	invest := fs.Float64("invest", 0, "Assumed investment return in percent")
	fs.Parse(os.Args[2:])

	// Only flags the user actually passed become adjustments; an untouched
	// dimension stays nil so the projection treats it as absent.
	var adjustments domain.Adjustments
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "income":
			adjustments.IncomePct = domain.Pct(*income)
		case "expenses":
			adjustments.ExpensesPct = domain.Pct(*expenses)
		case "savings":
			adjustments.SavingsPct = domain.Pct(*savings)
		case "invest":
			adjustments.InvestmentReturnPct = domain.Pct(*invest)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	svc, _, err := openService(ctx, log, *project, *dataset, *userID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open dashboard")
	}
	defer svc.Close()

	scenario, err := svc.RunScenario(ctx, adjustments)
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}

	fmt.Println("\n=== Projection ===")
	fmt.Printf("Scenario ID:           %s\n", scenario.ID)
	fmt.Printf("Net worth:             %d\n", scenario.Impact.NetWorth)
	fmt.Printf("Savings after 5 years: %d\n", scenario.Impact.SavingsAfter5Years)
	fmt.Printf("Retirement age:        %d\n", scenario.Impact.RetirementAge)
	fmt.Println()
}

func runAdd(log zerolog.Logger) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	project, dataset, userID := sessionFlags(fs)
	date := fs.String("date", time.Now().Format("2006-01-02"), "Transaction date (YYYY-MM-DD)")
	description := fs.String("description", "", "Transaction description")
	amount := fs.Float64("amount", 0, "Unsigned amount")
	category := fs.String("category", "", "Spending category")
	txType := fs.String("type", "expense", "Transaction type: income or expense")
	accountID := fs.String("account", "", "Target account ID (defaults to the first account)")
	fs.Parse(os.Args[2:])

	if *description == "" || *amount <= 0 {
		log.Fatal().Msg("Usage: cli add -description TEXT -amount N [-type income|expense]")
	}

	parsedDate, err := time.Parse("2006-01-02", *date)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -date, expected YYYY-MM-DD")
	}

	typ := domain.TransactionType(*txType)
	if typ != domain.TransactionIncome && typ != domain.TransactionExpense {
		log.Fatal().Msg("-type must be income or expense")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	svc, _, err := openService(ctx, log, *project, *dataset, *userID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open dashboard")
	}
	defer svc.Close()

	input := domain.TransactionInput{
		Date:        parsedDate,
		Description: *description,
		Amount:      *amount,
		Category:    *category,
		Type:        typ,
	}

	var tx *domain.Transaction
	if *accountID != "" {
		tx, err = svc.AddTransactionTo(ctx, *accountID, input)
	} else {
		tx, err = svc.AddTransaction(ctx, input)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to add transaction")
	}

	fmt.Printf("Recorded %s %s of %.2f (transaction %s)\n", tx.Type, tx.Category, tx.Amount, tx.ID)
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	project, dataset, userID := sessionFlags(fs)
	bucket := fs.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for the snapshot")
	dir := fs.String("dir", "", "Local directory for the snapshot (instead of GCS)")
	fs.Parse(os.Args[2:])

	if *bucket == "" && *dir == "" {
		log.Fatal().Msg("Usage: cli export -bucket NAME (or -dir PATH)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	svc, user, err := openService(ctx, log, *project, *dataset, *userID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open dashboard")
	}
	defer svc.Close()

	var writer snapshot.Writer
	if *dir != "" {
		writer = &snapshot.FileWriter{Dir: *dir}
	} else {
		writer = &snapshot.GCSWriter{Bucket: *bucket}
	}

	name, err := snapshot.Export(ctx, writer, snapshot.Take(svc, user))
	if err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	if *dir != "" {
		fmt.Printf("Snapshot written to %s\n", name)
	} else {
		fmt.Printf("Snapshot written to gs://%s/%s\n", *bucket, name)
	}
}

func runDescribe(log zerolog.Logger) {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	project, dataset, userID := sessionFlags(fs)
	scenarioID := fs.String("scenario-id", "", "Scenario to describe")
	fs.Parse(os.Args[2:])

	if *scenarioID == "" {
		log.Fatal().Msg("Error: --scenario-id is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	svc, _, err := openService(ctx, log, *project, *dataset, *userID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open dashboard")
	}
	defer svc.Close()

	var scenario *domain.Scenario
	for _, s := range svc.Scenarios() {
		if s.ID == *scenarioID {
			scenario = &s
			break
		}
	}
	if scenario == nil {
		log.Fatal().Str("scenario_id", *scenarioID).Msg("Scenario not found")
	}

	text, err := advisor.DescribeScenario(ctx, *scenario)
	if err != nil {
		log.Warn().Err(err).Msg("Narrative generation failed, using fallback")
		text = advisor.FallbackDescription
	}

	fmt.Printf("\n%s: %s\n\n%s\n", scenario.ID, scenario.Name, text)
}

func runSeedRemote(log zerolog.Logger) {
	fs := flag.NewFlagSet("seed-remote", flag.ExitOnError)
	project, dataset, userID := sessionFlags(fs)
	fs.Parse(os.Args[2:])

	if *project == "" || *dataset == "" || *userID == "" {
		log.Fatal().Msg("Usage: cli seed-remote -project ID -dataset ID -user-id ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	repository, err := infraBQ.NewRepository(ctx, infraBQ.Config{ProjectID: *project, DatasetID: *dataset}, *userID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create repository")
	}
	defer repository.Close()

	for _, account := range seed.Accounts() {
		if err := repository.InsertAccount(ctx, account); err != nil {
			log.Fatal().Err(err).Str("account_id", account.ID).Msg("Failed to insert account")
		}
	}
	for _, tx := range seed.Transactions() {
		if err := repository.InsertTransaction(ctx, tx); err != nil {
			log.Fatal().Err(err).Str("transaction_id", tx.ID).Msg("Failed to insert transaction")
		}
	}
	for _, goal := range seed.Goals() {
		if err := repository.InsertGoal(ctx, goal); err != nil {
			log.Fatal().Err(err).Str("goal_id", goal.ID).Msg("Failed to insert goal")
		}
	}
	for _, budget := range seed.Budgets() {
		if err := repository.InsertBudget(ctx, budget); err != nil {
			log.Fatal().Err(err).Str("budget_id", budget.ID).Msg("Failed to insert budget")
		}
	}
	for _, scenario := range seed.Scenarios() {
		if err := repository.InsertScenario(ctx, scenario); err != nil {
			log.Fatal().Err(err).Str("scenario_id", scenario.ID).Msg("Failed to insert scenario")
		}
	}

	fmt.Printf("Seed data written to %s.%s for user %s\n", *project, *dataset, *userID)
}
