package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Transaction kinds. Summary arithmetic lives in the client; the server
// only stores and lists raw transactions.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is one income or expense entry.
type Transaction struct {
	TransID     int64       `json:"trans_id"`
	UserID      int64       `json:"user_id"`
	Amount      float64     `json:"amount"`
	Type        string      `json:"type"`
	TransDate   string      `json:"trans_date"`
	Description pgtype.Text `json:"description"`
}

const listTransactions = `
SELECT trans_id, user_id, amount, type, to_char(trans_date, 'YYYY-MM-DD'), description
FROM transactions
WHERE user_id = $1
ORDER BY trans_date DESC, trans_id DESC`

// ListTransactions returns all of the user's transactions, newest first.
func (q *Queries) ListTransactions(ctx context.Context, userID int64) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactions, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []Transaction{}
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.TransID, &t.UserID, &t.Amount, &t.Type,
			&t.TransDate, &t.Description); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// CreateTransactionParams holds the fields for a new transaction.
type CreateTransactionParams struct {
	UserID      int64
	Amount      float64
	Type        string
	TransDate   string
	Description pgtype.Text
}

const createTransaction = `
INSERT INTO transactions (user_id, amount, type, trans_date, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING trans_id`

// CreateTransaction inserts a transaction and returns its id.
func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, createTransaction,
		arg.UserID, arg.Amount, arg.Type, arg.TransDate, arg.Description,
	).Scan(&id)
	return id, err
}

// UpdateTransactionParams identifies the transaction to update plus its
// new values.
type UpdateTransactionParams struct {
	TransID     int64
	UserID      int64
	Amount      float64
	Type        string
	TransDate   string
	Description pgtype.Text
}

const updateTransaction = `
UPDATE transactions
SET amount = $3, type = $4, trans_date = $5, description = $6
WHERE trans_id = $1 AND user_id = $2`

// UpdateTransaction rewrites one transaction owned by the user.
func (q *Queries) UpdateTransaction(ctx context.Context, arg UpdateTransactionParams) error {
	tag, err := q.db.Exec(ctx, updateTransaction,
		arg.TransID, arg.UserID, arg.Amount, arg.Type, arg.TransDate, arg.Description,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteTransaction = `
DELETE FROM transactions WHERE trans_id = $1 AND user_id = $2`

// DeleteTransaction removes one transaction owned by the user.
func (q *Queries) DeleteTransaction(ctx context.Context, transID, userID int64) error {
	tag, err := q.db.Exec(ctx, deleteTransaction, transID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
