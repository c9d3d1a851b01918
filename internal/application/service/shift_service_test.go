package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	"github.com/brewforge/shift-engine/pkg/apperror"
)

func TestShiftOpenAndClose(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo, "", testLogger())
	ctx := context.Background()

	shift, err := svc.Open(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, enum.ShiftStateOpen, shift.State)
	assert.Equal(t, "alice", shift.OpenedBy)
	assert.Zero(t, shift.TotalSales)

	closed, err := svc.Close(ctx, shift.ID, "")
	require.NoError(t, err)
	assert.Equal(t, enum.ShiftStateClosed, closed.State)
	require.NotNil(t, closed.ClosedAt)
}

func TestShiftOpenRejectsSecondOpen(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo, "", testLogger())
	ctx := context.Background()

	_, err := svc.Open(ctx, "alice", "")
	require.NoError(t, err)

	_, err = svc.Open(ctx, "bob", "")
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestShiftReopenAfterClose(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo, "", testLogger())
	ctx := context.Background()

	first, err := svc.Open(ctx, "alice", "")
	require.NoError(t, err)
	_, err = svc.Close(ctx, first.ID, "")
	require.NoError(t, err)

	second, err := svc.Open(ctx, "bob", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestShiftOpenRequiresOperator(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), "", testLogger())

	_, err := svc.Open(context.Background(), "", "")
	assert.True(t, apperror.IsValidation(err))
}

func TestShiftPINCheck(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewShiftService(newFakeShiftRepo(), string(hash), testLogger())
	ctx := context.Background()

	_, err = svc.Open(ctx, "alice", "0000")
	assert.ErrorIs(t, err, apperror.ErrInvalidPIN)

	shift, err := svc.Open(ctx, "alice", "4321")
	require.NoError(t, err)

	_, err = svc.Close(ctx, shift.ID, "0000")
	assert.ErrorIs(t, err, apperror.ErrInvalidPIN)
}

func TestShiftCloseUnknownShift(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), "", testLogger())

	_, err := svc.Close(context.Background(), uuid.New(), "")
	assert.True(t, apperror.IsNotFound(err))
}

func TestShiftCurrentWhenNoneOpen(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), "", testLogger())

	_, err := svc.Current(context.Background())
	assert.True(t, apperror.IsNotFound(err))
}

func TestShiftRecordSaleAggregates(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo, "", testLogger())
	ctx := context.Background()

	shift, err := svc.Open(ctx, "alice", "")
	require.NoError(t, err)

	sale := &entity.Sale{
		ID:      uuid.New(),
		ShiftID: shift.ID,
		Total:   31000,
		Lines: entity.SaleLines{
			{ProductID: uuid.New(), Name: "Latte", UnitPrice: 19000, Quantity: 1, Category: enum.ProductCategoryCoffee},
			{ProductID: uuid.New(), Name: "Croissant", UnitPrice: 12000, Quantity: 1, Category: enum.ProductCategoryFood},
		},
	}
	require.NoError(t, svc.RecordSale(ctx, shift.ID, sale))

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(31000), current.TotalSales)
	assert.Equal(t, 1, current.Transactions)
	assert.Equal(t, 1, current.CoffeeCount)
	assert.Equal(t, 1, current.FoodCount)
}

func TestShiftRecordSaleOnClosedShiftFails(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo, "", testLogger())
	ctx := context.Background()

	shift, err := svc.Open(ctx, "alice", "")
	require.NoError(t, err)
	_, err = svc.Close(ctx, shift.ID, "")
	require.NoError(t, err)

	sale := &entity.Sale{ID: uuid.New(), ShiftID: shift.ID, Total: 1000}
	assert.Error(t, svc.RecordSale(ctx, shift.ID, sale))
}
