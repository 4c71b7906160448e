package repositories

import (
	"context"
)

// TransactionManager runs a unit of work atomically.
type TransactionManager interface {
	// WithinTx runs fn inside a transaction carried by the context passed to fn.
	// Repository calls made with that context join the transaction. If fn returns
	// an error every write made through it is rolled back and the error returned.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
