package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	"github.com/brewforge/shift-engine/internal/domain/repository"
	"github.com/brewforge/shift-engine/pkg/apperror"
	"github.com/brewforge/shift-engine/pkg/logger"
)

// ShiftService owns the lifecycle of work shifts and their running
// aggregates. At most one shift is open at a time; the repository's
// conditional insert enforces that across registers.
type ShiftService struct {
	shiftRepo repository.ShiftRepository
	pinHash   string
	logger    *logger.Logger
}

// NewShiftService creates a new shift service. pinHash is the bcrypt hash of
// the operator PIN required to open or close a shift; empty disables the
// check.
func NewShiftService(shiftRepo repository.ShiftRepository, pinHash string, log *logger.Logger) *ShiftService {
	return &ShiftService{
		shiftRepo: shiftRepo,
		pinHash:   pinHash,
		logger:    log.WithComponent("shift_service"),
	}
}

func (s *ShiftService) verifyPIN(pin string) error {
	if s.pinHash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.pinHash), []byte(pin)); err != nil {
		return apperror.ErrInvalidPIN
	}
	return nil
}

// Open starts a new shift with zeroed aggregates. It fails with a conflict
// when another shift is already open.
func (s *ShiftService) Open(ctx context.Context, operator, pin string) (*entity.Shift, error) {
	if err := s.verifyPIN(pin); err != nil {
		return nil, err
	}
	if operator == "" {
		return nil, apperror.NewValidationError("operator name is required")
	}

	shift := &entity.Shift{
		OpenedBy: operator,
		OpenedAt: time.Now(),
		State:    enum.ShiftStateOpen,
	}

	inserted, err := s.shiftRepo.OpenShift(ctx, shift)
	if err != nil {
		s.logger.Error("Failed to open shift", "operator", operator, "error", err)
		return nil, apperror.NewConnectivityError("shift store unreachable")
	}
	if !inserted {
		s.logger.Warn("Open rejected: another shift is already open", "operator", operator)
		return nil, apperror.NewConflictError("a shift is already open")
	}

	s.logger.Info("Shift opened", "shift_id", shift.ID, "operator", operator)
	return shift, nil
}

// Close finalizes the shift's aggregates and transitions it to closed. The
// caller is responsible for resetting register carts afterwards.
func (s *ShiftService) Close(ctx context.Context, shiftID uuid.UUID, pin string) (*entity.Shift, error) {
	if err := s.verifyPIN(pin); err != nil {
		return nil, err
	}

	closedAt := time.Now()
	closed, err := s.shiftRepo.CloseShift(ctx, shiftID, closedAt)
	if err != nil {
		s.logger.Error("Failed to close shift", "shift_id", shiftID, "error", err)
		return nil, apperror.NewConnectivityError("shift store unreachable")
	}
	if !closed {
		return nil, apperror.NewNotFoundError("Open shift")
	}

	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Shift closed",
		"shift_id", shiftID,
		"total_sales", shift.TotalSales,
		"transactions", shift.Transactions)
	return shift, nil
}

// Current returns the open shift, or a not-found error when none is open.
func (s *ShiftService) Current(ctx context.Context) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetOpen(ctx)
	if err != nil {
		return nil, apperror.NewConnectivityError("shift store unreachable")
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Open shift")
	}
	return shift, nil
}

// RecordSale folds one finalized sale into the shift aggregates. It must be
// called exactly once per sale; the increment is never retried or rolled
// back.
func (s *ShiftService) RecordSale(ctx context.Context, shiftID uuid.UUID, sale *entity.Sale) error {
	coffee := sale.CountByCategory(enum.ProductCategoryCoffee)
	food := sale.CountByCategory(enum.ProductCategoryFood)

	if err := s.shiftRepo.ApplySale(ctx, shiftID, sale.Total, coffee, food); err != nil {
		s.logger.Error("Failed to record sale in shift aggregates",
			"shift_id", shiftID, "sale_id", sale.ID, "error", err)
		return apperror.NewPersistenceError("failed to update shift aggregates")
	}

	s.logger.Info("Sale recorded in shift aggregates",
		"shift_id", shiftID, "sale_id", sale.ID, "total", sale.Total)
	return nil
}

// History returns recent shifts, newest first.
func (s *ShiftService) History(ctx context.Context, limit int) ([]entity.Shift, error) {
	return s.shiftRepo.List(ctx, limit)
}
