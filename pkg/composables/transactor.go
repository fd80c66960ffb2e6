package composables

import "context"

// Transactor is the transaction collaborator consumed by write services:
// begin, run, commit, and roll back on error. Services never touch the
// driver directly, which keeps cascade logic testable without a database.
type Transactor interface {
	InTx(ctx context.Context, fn func(context.Context) error) error
}

// PgxTransactor runs the closure inside a pgx transaction taken from the
// pool carried in the context.
type PgxTransactor struct{}

func NewPgxTransactor() *PgxTransactor {
	return &PgxTransactor{}
}

func (t *PgxTransactor) InTx(ctx context.Context, fn func(context.Context) error) error {
	return InTx(ctx, fn)
}
