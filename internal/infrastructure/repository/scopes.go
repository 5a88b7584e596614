package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ctxKey string

// txKey carries the open transaction of the current unit of work
const txKey ctxKey = "gorm_tx"

// withTx stores tx in ctx for repositories called inside a unit of work
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// txFrom returns the transaction carried by ctx, if any
func txFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok && tx != nil
}

// conn returns the transaction bound to ctx, or db outside a unit of work.
// Every repository query goes through it.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := txFrom(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// SearchScope matches term anywhere in any of the columns, case-insensitively.
// LOWER ... LIKE works on both PostgreSQL and SQLite, unlike ILIKE.
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '\\'"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// DateRangeScope bounds column by an inclusive range. Nil ends are open.
func DateRangeScope(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" <= ?", *to)
		}
		return db
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func isSQLite(db *gorm.DB) bool {
	return db.Dialector.Name() == "sqlite"
}
