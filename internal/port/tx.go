package port

import "context"

// Transactor runs fn inside one database transaction. Repositories called with
// the context passed to fn take part in it. The transaction is committed when
// fn returns nil and rolled back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
