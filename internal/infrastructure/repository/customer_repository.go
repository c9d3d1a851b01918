package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	domainRepo "github.com/brewforge/shift-engine/internal/domain/repository"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// AtomicCredit adds amount to an existing account's balance.
// Uses: UPDATE customers SET bonus_balance = bonus_balance + amount WHERE phone = ?
func (r *customerRepository) AtomicCredit(ctx context.Context, phone string, amount int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Where("phone = ?", phone).
		Update("bonus_balance", gorm.Expr("bonus_balance + ?", amount))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ConditionalDebit subtracts amount only while the balance still covers it.
// Uses: UPDATE customers SET bonus_balance = bonus_balance - amount
//
//	WHERE phone = ? AND bonus_balance >= amount
//
// A zero RowsAffected means another register debited first; the caller
// re-reads the balance and retries with a smaller amount.
func (r *customerRepository) ConditionalDebit(ctx context.Context, phone string, amount int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Where("phone = ? AND bonus_balance >= ?", phone, amount).
		Update("bonus_balance", gorm.Expr("bonus_balance - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
