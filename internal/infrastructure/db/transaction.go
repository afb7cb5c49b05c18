package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
)

type txKey struct{}

// Conn ctx에 트랜잭션이 있으면 그것을, 없으면 db를 ctx와 묶어 반환합니다
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor GORM 트랜잭션 기반 Transactor
func NewTransactor(db *gorm.DB) repository.Transactor {
	return &gormTransactor{db: db}
}

// WithinTransaction 이미 트랜잭션 안이면 그대로 fn을 실행합니다.
// fn이 에러를 반환하거나 panic이 나면 롤백됩니다.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
