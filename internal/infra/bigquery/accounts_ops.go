package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/finance-twin/internal/domain"
	"github.com/dvloznov/finance-twin/internal/repo"
)

// ListAccounts retrieves the owner's accounts, newest first. The dashboard
// treats the first account as the default mutation target, so the ordering
// here is load-bearing.
func (r *Repository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := fmt.Sprintf(`
		SELECT
			account_id,
			user_id,
			account_name,
			account_type,
			balance,
			currency,
			last_updated,
			created_ts
		FROM %s
		WHERE user_id = @user_id
		ORDER BY created_ts DESC
	`, r.table(accountsTable))

	q := r.client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: r.userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: reading query: %w", err)
	}

	var accounts []domain.Account
	for {
		var row AccountRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListAccounts: iterating: %w", err)
		}
		accounts = append(accounts, accountFromRow(&row))
	}

	return accounts, nil
}

// InsertAccount stores one account for the owner. Used when bootstrapping a
// fresh dataset; the dashboard itself never creates accounts.
func (r *Repository) InsertAccount(ctx context.Context, account domain.Account) error {
	if err := r.insert(ctx, accountsTable, []*AccountRow{rowFromAccount(account, r.userID)}); err != nil {
		return fmt.Errorf("InsertAccount: %w", err)
	}
	return nil
}

// UpdateAccountBalance sets an account's balance and refreshes its
// last_updated timestamp. Returns repo.ErrNotFound when the account does not
// exist for this owner.
func (r *Repository) UpdateAccountBalance(ctx context.Context, accountID string, balance float64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET balance = @balance,
		    last_updated = CURRENT_TIMESTAMP()
		WHERE account_id = @account_id
		  AND user_id = @user_id
	`, r.table(accountsTable))

	affected, err := r.runDML(ctx, query, []bigquery.QueryParameter{
		{Name: "balance", Value: balance},
		{Name: "account_id", Value: accountID},
		{Name: "user_id", Value: r.userID},
	})
	if err != nil {
		return fmt.Errorf("UpdateAccountBalance: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("UpdateAccountBalance: account %q: %w", accountID, repo.ErrNotFound)
	}
	return nil
}
