package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"

	"github.com/dvloznov/finance-twin/internal/repo"
)

const (
	transactionsTable = "transactions"
	accountsTable     = "accounts"
	goalsTable        = "goals"
	budgetsTable      = "budgets"
	scenariosTable    = "scenarios"
)

// Config locates the dataset holding the dashboard tables.
type Config struct {
	ProjectID string
	DatasetID string
}

// Repository implements repo.Repository against BigQuery. It holds a shared
// client and is scoped to a single owner: every query filters on user_id and
// every insert stamps it.
type Repository struct {
	client    *bigquery.Client
	projectID string
	datasetID string
	userID    string
}

// NewRepository creates an owner-scoped repository with a shared BigQuery
// client.
func NewRepository(ctx context.Context, cfg Config, userID string) (*Repository, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("NewRepository: project ID is required")
	}
	if cfg.DatasetID == "" {
		return nil, fmt.Errorf("NewRepository: dataset ID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("NewRepository: user ID is required")
	}

	client, err := bigquery.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("NewRepository: creating client: %w", err)
	}

	return &Repository{
		client:    client,
		projectID: cfg.ProjectID,
		datasetID: cfg.DatasetID,
		userID:    userID,
	}, nil
}

// Close closes the shared BigQuery client.
func (r *Repository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *Repository) table(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", r.projectID, r.datasetID, name)
}

func (r *Repository) insert(ctx context.Context, tableName string, rows any) error {
	inserter := r.client.DatasetInProject(r.projectID, r.datasetID).Table(tableName).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("inserting into %s: %w", tableName, err)
	}
	return nil
}

// runDML executes an UPDATE and reports how many rows it touched, so callers
// can turn zero-row updates into repo.ErrNotFound.
func (r *Repository) runDML(ctx context.Context, query string, params []bigquery.QueryParameter) (int64, error) {
	q := r.client.Query(query)
	q.Parameters = params

	job, err := q.Run(ctx)
	if err != nil {
		return 0, fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return 0, fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return 0, fmt.Errorf("job error: %w", err)
	}

	if stats, ok := status.Statistics.Details.(*bigquery.QueryStatistics); ok {
		return stats.NumDMLAffectedRows, nil
	}
	return 0, nil
}

var _ repo.Repository = (*Repository)(nil)
