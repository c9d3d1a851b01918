package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewforge/shift-engine/internal/config"
	"github.com/brewforge/shift-engine/pkg/apperror"
)

func testBonusConfig() config.BonusConfig {
	return config.BonusConfig{SignupCredit: 5000, EarnPercent: 5}
}

func TestBonusRegisterGrantsSignupCredit(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewBonusService(repo, testBonusConfig(), testLogger())
	ctx := context.Background()

	// Registration during a 300.00 sale: signup credit plus 5% earned.
	customer, err := svc.Register(ctx, "+79990001122", 1500)
	require.NoError(t, err)
	assert.Equal(t, int64(6500), customer.BonusBalance)

	found, err := svc.Lookup(ctx, "+7 999 000-11-22")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(6500), found.BonusBalance)
}

func TestBonusLookupUnknownPhone(t *testing.T) {
	svc := NewBonusService(newFakeCustomerRepo(), testBonusConfig(), testLogger())

	found, err := svc.Lookup(context.Background(), "+79990001122")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestBonusLookupMalformedPhone(t *testing.T) {
	svc := NewBonusService(newFakeCustomerRepo(), testBonusConfig(), testLogger())

	_, err := svc.Lookup(context.Background(), "not-a-phone")
	assert.True(t, apperror.IsValidation(err))
}

func TestBonusCredit(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewBonusService(repo, testBonusConfig(), testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, "+79990001122", 0)
	require.NoError(t, err)

	require.NoError(t, svc.Credit(ctx, "+79990001122", 1000))

	found, err := svc.Lookup(ctx, "+79990001122")
	require.NoError(t, err)
	assert.Equal(t, int64(6000), found.BonusBalance)
}

func TestBonusCreditUnknownCustomer(t *testing.T) {
	svc := NewBonusService(newFakeCustomerRepo(), testBonusConfig(), testLogger())

	err := svc.Credit(context.Background(), "+79990001122", 1000)
	assert.True(t, apperror.IsNotFound(err))
}

func TestBonusDebitCapsAtBalance(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewBonusService(repo, testBonusConfig(), testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, "+79990001122", 0) // balance 5000
	require.NoError(t, err)

	applied, err := svc.Debit(ctx, "+79990001122", 30000)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), applied)

	found, err := svc.Lookup(ctx, "+79990001122")
	require.NoError(t, err)
	assert.Zero(t, found.BonusBalance)
}

func TestBonusDebitEmptyBalance(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewBonusService(repo, testBonusConfig(), testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, "+79990001122", 0)
	require.NoError(t, err)
	_, err = svc.Debit(ctx, "+79990001122", 5000)
	require.NoError(t, err)

	_, err = svc.Debit(ctx, "+79990001122", 100)
	assert.True(t, apperror.IsValidation(err))
}

func TestBonusDebitRetriesOnContention(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewBonusService(repo, testBonusConfig(), testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, "+79990001122", 0) // balance 5000
	require.NoError(t, err)

	// Another register drains most of the balance between the read and
	// the conditional update, exactly once.
	drained := false
	repo.debitHook = func() {
		if drained {
			return
		}
		drained = true
		repo.mu.Lock()
		repo.customers["+79990001122"].BonusBalance = 2000
		repo.mu.Unlock()
	}

	applied, err := svc.Debit(ctx, "+79990001122", 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), applied)

	found, err := svc.Lookup(ctx, "+79990001122")
	require.NoError(t, err)
	assert.Zero(t, found.BonusBalance)
}

func TestBonusEarnedFor(t *testing.T) {
	svc := NewBonusService(newFakeCustomerRepo(), testBonusConfig(), testLogger())

	assert.Equal(t, int64(1500), svc.EarnedFor(30000))
	assert.Equal(t, int64(0), svc.EarnedFor(0))
	// Floor, never round up.
	assert.Equal(t, int64(4), svc.EarnedFor(99))
}
