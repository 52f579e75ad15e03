package repokit

import "context"

// BeginHook runs first inside every transaction, e.g. SET LOCAL
type BeginHook func(ctx context.Context, q Queryer) error

type hookedTx struct {
	TxRunner
	hooks []BeginHook
}

// WithBeginHooks returns a TxRunner that runs hooks at the top of each transaction
// a failing hook rolls the transaction back before fn runs
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{TxRunner: inner, hooks: hooks}
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
