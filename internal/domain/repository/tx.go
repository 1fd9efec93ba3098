package repository

import "context"

// Tx is an opaque handle to a storage transaction. The engine threads it
// through repository calls so that inventory mutation and order persistence
// share one all-or-nothing commit.
type Tx interface{}

// TxManager owns the transaction boundary. The callback either returns nil,
// committing everything staged through the Tx handle, or an error, rolling
// every staged mutation back.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(tx Tx) error) error
}
