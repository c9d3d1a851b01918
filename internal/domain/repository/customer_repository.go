package repository

import (
	"context"

	"github.com/brewforge/shift-engine/internal/domain/entity"
)

// CustomerRepository defines the interface for bonus account data operations.
// Balance mutations are conditional SQL updates; two concurrent debits can
// never drive a balance negative.
type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
	// AtomicCredit adds amount to an existing account. It returns false
	// when the account does not exist.
	AtomicCredit(ctx context.Context, phone string, amount int64) (bool, error)
	// ConditionalDebit subtracts amount only while the balance covers it.
	// It returns false when the balance was insufficient at execution
	// time; the caller re-reads and retries with a smaller amount.
	ConditionalDebit(ctx context.Context, phone string, amount int64) (bool, error)
}
