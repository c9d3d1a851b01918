package service

import (
	"context"

	"github.com/brewforge/shift-engine/internal/config"
	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/repository"
	"github.com/brewforge/shift-engine/pkg/apperror"
	"github.com/brewforge/shift-engine/pkg/logger"
	"github.com/brewforge/shift-engine/pkg/utils"
)

// debitRetries bounds the re-read loop when a concurrent debit shrinks the
// balance between the read and the conditional update.
const debitRetries = 3

// BonusService manages customer loyalty balances. Registration and top-up
// are mutually exclusive paths: the caller decides based on Lookup, and
// Register must never be invoked for an existing phone.
type BonusService struct {
	customerRepo repository.CustomerRepository
	cfg          config.BonusConfig
	logger       *logger.Logger
}

// NewBonusService creates a new bonus service
func NewBonusService(customerRepo repository.CustomerRepository, cfg config.BonusConfig, log *logger.Logger) *BonusService {
	return &BonusService{
		customerRepo: customerRepo,
		cfg:          cfg,
		logger:       log.WithComponent("bonus_service"),
	}
}

// Lookup returns the account for a phone, or nil when not registered.
func (s *BonusService) Lookup(ctx context.Context, phone string) (*entity.Customer, error) {
	normalized, ok := utils.NormalizePhone(phone)
	if !ok {
		return nil, apperror.NewValidationError("malformed phone number")
	}
	return s.customerRepo.GetByPhone(ctx, normalized)
}

// Register creates a new account with the signup credit plus any bonus
// already earned by the triggering sale.
func (s *BonusService) Register(ctx context.Context, phone string, earnedCredit int64) (*entity.Customer, error) {
	normalized, ok := utils.NormalizePhone(phone)
	if !ok {
		return nil, apperror.NewValidationError("malformed phone number")
	}

	customer := &entity.Customer{
		Phone:        normalized,
		BonusBalance: s.cfg.SignupCredit + earnedCredit,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Error("Failed to register customer", "phone", normalized, "error", err)
		return nil, apperror.NewPersistenceError("failed to register customer")
	}

	s.logger.Info("Customer registered",
		"phone", normalized,
		"signup_credit", s.cfg.SignupCredit,
		"earned_credit", earnedCredit)
	return customer, nil
}

// Credit adds amount to an existing account's balance.
func (s *BonusService) Credit(ctx context.Context, phone string, amount int64) error {
	if amount < 0 {
		return apperror.NewValidationError("credit amount must be non-negative")
	}
	if amount == 0 {
		return nil
	}

	credited, err := s.customerRepo.AtomicCredit(ctx, phone, amount)
	if err != nil {
		return apperror.NewPersistenceError("failed to credit bonus")
	}
	if !credited {
		return apperror.NewNotFoundError("Customer")
	}

	s.logger.Info("Bonus credited", "phone", phone, "amount", amount)
	return nil
}

// Debit applies up to amount from the account's balance and returns the
// applied amount: min(amount, balance). The conditional update re-reads and
// retries when a concurrent debit shrank the balance first, so the balance
// never goes negative.
func (s *BonusService) Debit(ctx context.Context, phone string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperror.NewValidationError("debit amount must be positive")
	}

	for attempt := 0; attempt < debitRetries; attempt++ {
		customer, err := s.customerRepo.GetByPhone(ctx, phone)
		if err != nil {
			return 0, apperror.NewConnectivityError("bonus ledger unreachable")
		}
		if customer == nil {
			return 0, apperror.NewNotFoundError("Customer")
		}
		if customer.BonusBalance <= 0 {
			return 0, apperror.NewValidationError("no bonus balance to apply")
		}

		applied := amount
		if customer.BonusBalance < applied {
			applied = customer.BonusBalance
		}

		debited, err := s.customerRepo.ConditionalDebit(ctx, phone, applied)
		if err != nil {
			return 0, apperror.NewPersistenceError("failed to debit bonus")
		}
		if debited {
			s.logger.Info("Bonus applied", "phone", phone, "requested", amount, "applied", applied)
			return applied, nil
		}
		// Another register debited between the read and the update.
		s.logger.Warn("Bonus debit contention, retrying", "phone", phone, "attempt", attempt+1)
	}

	return 0, apperror.NewConflictError("bonus balance changed concurrently")
}

// EarnedFor returns the bonus earned for a raw order total:
// floor(rawTotal * earnPercent / 100).
func (s *BonusService) EarnedFor(rawTotal int64) int64 {
	if rawTotal <= 0 || s.cfg.EarnPercent <= 0 {
		return 0
	}
	return rawTotal * s.cfg.EarnPercent / 100
}
