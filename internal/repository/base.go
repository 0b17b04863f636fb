package repository

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// QueryObserver records how long a labelled query took.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

type base struct {
	db       *sqlx.DB
	observer QueryObserver
}

// exec returns the caller's transaction when one is open, otherwise the pool.
func (b *base) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return b.db
}

func (b *base) observe(label string, start time.Time) {
	if b.observer != nil {
		b.observer.ObserveDBQuery(label, time.Since(start))
	}
}
