package service

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// transactor runs fn inside one database transaction. database.Transactor satisfies it.
type transactor interface {
	WithinTx(ctx context.Context, fn func(exec sqlx.ExtContext) error) error
}
