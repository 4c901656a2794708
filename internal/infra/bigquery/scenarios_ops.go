package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/finance-twin/internal/domain"
)

// ListScenarios retrieves the owner's scenarios, newest first. The stored
// adjustments/impact payloads are parsed back into their typed shape; a
// malformed payload fails the whole list, which the sync controller treats
// like any other fetch failure.
func (r *Repository) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	query := fmt.Sprintf(`
		SELECT
			scenario_id,
			user_id,
			scenario_name,
			description,
			adjustments,
			impact,
			created_ts
		FROM %s
		WHERE user_id = @user_id
		ORDER BY created_ts DESC
	`, r.table(scenariosTable))

	q := r.client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: r.userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListScenarios: reading query: %w", err)
	}

	var scenarios []domain.Scenario
	for {
		var row ScenarioRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListScenarios: iterating: %w", err)
		}
		scenario, err := scenarioFromRow(&row)
		if err != nil {
			return nil, fmt.Errorf("ListScenarios: %w", err)
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, nil
}

// InsertScenario stores one scenario for the owner, serializing the
// adjustments and impact to JSON payloads.
func (r *Repository) InsertScenario(ctx context.Context, scenario domain.Scenario) error {
	row, err := rowFromScenario(scenario, r.userID)
	if err != nil {
		return fmt.Errorf("InsertScenario: %w", err)
	}
	if err := r.insert(ctx, scenariosTable, []*ScenarioRow{row}); err != nil {
		return fmt.Errorf("InsertScenario: %w", err)
	}
	return nil
}
