package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/finance-twin/internal/domain"
)

// ListBudgets retrieves the owner's budgets, newest first. The dashboard
// never updates budgets; they only change through dataset bootstrapping.
func (r *Repository) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	query := fmt.Sprintf(`
		SELECT
			budget_id,
			user_id,
			category,
			allocated,
			spent,
			period,
			created_ts
		FROM %s
		WHERE user_id = @user_id
		ORDER BY created_ts DESC
	`, r.table(budgetsTable))

	q := r.client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: r.userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListBudgets: reading query: %w", err)
	}

	var budgets []domain.Budget
	for {
		var row BudgetRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListBudgets: iterating: %w", err)
		}
		budgets = append(budgets, budgetFromRow(&row))
	}

	return budgets, nil
}

// InsertBudget stores one budget for the owner. Like InsertAccount it only
// exists for dataset bootstrapping.
func (r *Repository) InsertBudget(ctx context.Context, budget domain.Budget) error {
	if err := r.insert(ctx, budgetsTable, []*BudgetRow{rowFromBudget(budget, r.userID)}); err != nil {
		return fmt.Errorf("InsertBudget: %w", err)
	}
	return nil
}
