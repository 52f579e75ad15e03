// Package repokit is the storage surface repositories are written against
package repokit

import (
	"context"

	"ballotbox/internal/platform/store"
)

type (
	// Queryer runs statements, inside or outside a transaction
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open a transaction
	TxRunner = store.TxRunner

	// KV is the key value seam for blobs and locks
	KV = store.KV

	// Unlock releases a KV lock
	Unlock = store.Unlock

	// CommandTag is the outcome of Exec
	CommandTag = store.CommandTag

	// Rows is a query result set
	Rows = store.Rows

	// Row is a single row result
	Row = store.Row
)

// WithTx runs fn in one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
