package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/finance-twin/internal/domain"
	"github.com/dvloznov/finance-twin/internal/repo"
)

// ListGoals retrieves the owner's goals, newest first.
func (r *Repository) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	query := fmt.Sprintf(`
		SELECT
			goal_id,
			user_id,
			goal_name,
			target_amount,
			current_amount,
			deadline,
			category,
			created_ts,
			updated_ts
		FROM %s
		WHERE user_id = @user_id
		ORDER BY created_ts DESC
	`, r.table(goalsTable))

	q := r.client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: r.userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListGoals: reading query: %w", err)
	}

	var goals []domain.Goal
	for {
		var row GoalRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListGoals: iterating: %w", err)
		}
		goals = append(goals, goalFromRow(&row))
	}

	return goals, nil
}

// InsertGoal stores one goal for the owner.
func (r *Repository) InsertGoal(ctx context.Context, goal domain.Goal) error {
	if err := r.insert(ctx, goalsTable, []*GoalRow{rowFromGoal(goal, r.userID)}); err != nil {
		return fmt.Errorf("InsertGoal: %w", err)
	}
	return nil
}

// UpdateGoalAmount sets a goal's current_amount. Returns repo.ErrNotFound
// when the goal does not exist for this owner.
func (r *Repository) UpdateGoalAmount(ctx context.Context, goalID string, currentAmount float64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET current_amount = @current_amount,
		    updated_ts = CURRENT_TIMESTAMP()
		WHERE goal_id = @goal_id
		  AND user_id = @user_id
	`, r.table(goalsTable))

	affected, err := r.runDML(ctx, query, []bigquery.QueryParameter{
		{Name: "current_amount", Value: currentAmount},
		{Name: "goal_id", Value: goalID},
		{Name: "user_id", Value: r.userID},
	})
	if err != nil {
		return fmt.Errorf("UpdateGoalAmount: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("UpdateGoalAmount: goal %q: %w", goalID, repo.ErrNotFound)
	}
	return nil
}
