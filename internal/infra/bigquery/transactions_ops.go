package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/finance-twin/internal/domain"
)

// ListTransactions retrieves the owner's transactions, newest first.
func (r *Repository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT
			transaction_id,
			user_id,
			transaction_date,
			description,
			amount,
			category,
			type,
			created_ts
		FROM %s
		WHERE user_id = @user_id
		ORDER BY transaction_date DESC, created_ts DESC
	`, r.table(transactionsTable))

	q := r.client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: r.userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: reading query: %w", err)
	}

	var transactions []domain.Transaction
	for {
		var row TransactionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: iterating: %w", err)
		}
		transactions = append(transactions, transactionFromRow(&row))
	}

	return transactions, nil
}

// InsertTransaction stores one transaction for the owner.
func (r *Repository) InsertTransaction(ctx context.Context, tx domain.Transaction) error {
	if err := r.insert(ctx, transactionsTable, []*TransactionRow{rowFromTransaction(tx, r.userID)}); err != nil {
		return fmt.Errorf("InsertTransaction: %w", err)
	}
	return nil
}
