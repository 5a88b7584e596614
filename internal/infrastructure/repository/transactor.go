package repository

import (
	"context"

	"gorm.io/gorm"

	domainRepo "github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
)

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a unit of work backed by gorm transactions
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &gormTransactor{db: db}
}

// WithinTransaction joins the transaction already in ctx, or opens one.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
