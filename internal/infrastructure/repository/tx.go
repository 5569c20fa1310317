package repository

import (
	"context"

	domainRepo "github.com/salonhq/salon-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txKey struct{}

// gormUnitOfWork runs a function inside one gorm transaction. The transaction
// handle rides on the context, so every repository call made within the
// function hits the same transaction and commits or rolls back as one.
type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a transaction boundary backed by gorm
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom resolves the database handle for ctx: the ambient transaction when
// inside a unit of work, the plain connection otherwise.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
