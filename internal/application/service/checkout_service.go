package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	"github.com/brewforge/shift-engine/internal/domain/repository"
	"github.com/brewforge/shift-engine/pkg/apperror"
	"github.com/brewforge/shift-engine/pkg/fiscal"
	"github.com/brewforge/shift-engine/pkg/logger"
	"github.com/brewforge/shift-engine/pkg/utils"
)

// CheckoutStage names the step of the checkout pipeline. Stages run in
// strict order; a checkout can fail only while validating, every later
// stage is best effort.
type CheckoutStage int

const (
	StageIdle CheckoutStage = iota
	StageValidating
	StageApplyingBonus
	StageDeductingInventory
	StageSubmittingFiscal
	StagePersisting
	StageComplete
)

func (s CheckoutStage) String() string {
	return [...]string{
		"Idle", "Validating", "ApplyingBonus", "DeductingInventory",
		"SubmittingFiscal", "Persisting", "Complete",
	}[s]
}

// CheckoutInput carries the operator's choices for one checkout.
type CheckoutInput struct {
	// Phone, when set, identifies the loyalty account to credit after the
	// sale; unregistered phones are registered with the signup credit.
	Phone string
	// ApplyBonus requests debiting the account's balance against the raw
	// total. Requires Phone and an existing account.
	ApplyBonus bool
}

// CheckoutService orchestrates the cart, bonus ledger, inventory, fiscal
// gateway, sales log, and shift aggregates to finalize one sale.
//
// Checkouts for the same register are serialized through a per-register
// lock; cross-register consistency relies on the repositories' conditional
// SQL updates rather than a global lock.
type CheckoutService struct {
	carts     *CartRegistry
	shiftSvc  *ShiftService
	bonusSvc  *BonusService
	invSvc    *InventoryService
	saleRepo  repository.SaleRepository
	gateway   fiscal.Gateway
	logger    *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCheckoutService creates a new checkout coordinator
func NewCheckoutService(
	carts *CartRegistry,
	shiftSvc *ShiftService,
	bonusSvc *BonusService,
	invSvc *InventoryService,
	saleRepo repository.SaleRepository,
	gateway fiscal.Gateway,
	log *logger.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		shiftSvc: shiftSvc,
		bonusSvc: bonusSvc,
		invSvc:   invSvc,
		saleRepo: saleRepo,
		gateway:  gateway,
		logger:   log.WithComponent("checkout_service"),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *CheckoutService) registerLock(register string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[register]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[register] = lock
	}
	return lock
}

// Checkout finalizes the register's current cart into an immutable sale.
//
// Pipeline: validate → write-ahead pending sale → apply bonus → deduct
// inventory → submit fiscal → finalize sale row → update shift aggregates →
// earn bonus → clear cart. Failures after validation do not abort the sale:
// inventory problems are reported in the record, a fiscal failure leaves the
// sale unfiscalized, and a failed aggregate update is surfaced while the
// cart is still cleared.
func (s *CheckoutService) Checkout(ctx context.Context, register string, input CheckoutInput) (*entity.Sale, error) {
	lock := s.registerLock(register)
	lock.Lock()
	defer lock.Unlock()

	stage := StageValidating
	log := s.logger.With("register", register)

	// Validating
	cart := s.carts.Cart(register)
	if cart.IsEmpty() {
		return nil, apperror.NewValidationError("empty order")
	}

	shift, err := s.shiftSvc.Current(ctx)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewValidationError("shift closed")
		}
		return nil, err
	}

	var phone string
	var account *entity.Customer
	if input.Phone != "" {
		normalized, ok := utils.NormalizePhone(input.Phone)
		if !ok {
			return nil, apperror.NewValidationError("malformed phone number")
		}
		phone = normalized

		account, err = s.bonusSvc.Lookup(ctx, phone)
		if err != nil {
			return nil, err
		}
		if input.ApplyBonus && account == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		if input.ApplyBonus && account.BonusBalance <= 0 {
			return nil, apperror.NewValidationError("no bonus balance to apply")
		}
	}
	if input.ApplyBonus && phone == "" {
		return nil, apperror.NewValidationError("phone required to apply bonus")
	}

	lines := cart.Lines()
	rawTotal := cart.RawTotal()

	// Write-ahead: the intended sale is persisted before any side effect
	// so a crash mid-pipeline leaves a pending record to reconcile, not a
	// silent inconsistency.
	sale := &entity.Sale{
		ShiftID:   shift.ID,
		Lines:     lines,
		Total:     rawTotal,
		Timestamp: time.Now(),
	}
	if phone != "" {
		sale.CustomerPhone = &phone
	}
	if err := s.saleRepo.CreatePending(ctx, sale); err != nil {
		log.Error("Failed to write pending sale", "error", err)
		return nil, apperror.NewPersistenceError("failed to write pending sale")
	}

	// ApplyingBonus
	stage = StageApplyingBonus
	if input.ApplyBonus {
		applied, err := s.bonusSvc.Debit(ctx, phone, rawTotal)
		if err != nil {
			// Best effort past validation: the sale proceeds at full
			// price when the debit cannot be applied.
			log.Warn("Bonus application failed", "stage", stage.String(), "error", err)
		} else {
			sale.BonusApplied = applied
			sale.Total = rawTotal - applied
			if sale.Total < 0 {
				sale.Total = 0
			}
		}
	}

	// DeductingInventory
	stage = StageDeductingInventory
	deduction := s.invSvc.DeductForSale(ctx, lines)
	sale.InventoryUpdated = deduction.Success
	if len(deduction.Messages) > 0 {
		log.Warn("Inventory deduction diagnostics",
			"stage", stage.String(),
			"messages", strings.Join(deduction.Messages, "; "))
	}

	// SubmittingFiscal
	stage = StageSubmittingFiscal
	receipt, err := s.gateway.Submit(ctx, fiscalItems(lines), sale.Total)
	if err != nil {
		log.Warn("Fiscal registration failed, sale stays unfiscalized",
			"stage", stage.String(), "error", err)
	} else {
		sale.FiscalReceipt = &entity.FiscalData{
			FiscalSign:     receipt.FiscalSign,
			DocumentNumber: receipt.DocumentNumber,
			DriveNumber:    receipt.DriveNumber,
		}
	}

	// Bonus earning happens only once the sale is final, never
	// speculatively.
	if phone != "" {
		earned := s.bonusSvc.EarnedFor(rawTotal)
		sale.BonusEarned = earned
		if account == nil {
			if _, err := s.bonusSvc.Register(ctx, phone, earned); err != nil {
				log.Warn("Failed to register customer after sale", "error", err)
				sale.BonusEarned = 0
			}
		} else if err := s.bonusSvc.Credit(ctx, phone, earned); err != nil {
			log.Warn("Failed to credit earned bonus", "error", err)
			sale.BonusEarned = 0
		}
	}

	// Persisting
	stage = StagePersisting
	var persistErr error
	if err := s.saleRepo.Finalize(ctx, sale); err != nil {
		log.Error("Failed to finalize sale record", "stage", stage.String(), "error", err)
		persistErr = apperror.NewPersistenceError("failed to persist sale")
	} else if err := s.shiftSvc.RecordSale(ctx, shift.ID, sale); err != nil {
		persistErr = err
	}

	// Complete: the cart is cleared even when persistence failed; the
	// inventory and bonus mutations above are already applied and there
	// is no compensation path.
	stage = StageComplete
	cart.Clear()

	if persistErr != nil {
		return sale, persistErr
	}

	log.Info("Checkout complete",
		"stage", stage.String(),
		"sale_id", sale.ID,
		"shift_id", shift.ID,
		"total", sale.Total,
		"bonus_applied", sale.BonusApplied,
		"bonus_earned", sale.BonusEarned,
		"fiscalized", sale.FiscalReceipt != nil)
	return sale, nil
}

// Reconcile reports sales stuck in pending state from a previous run and
// marks them abandoned. Their side effects may or may not have been applied;
// the record keeps them visible instead of silently lost.
func (s *CheckoutService) Reconcile(ctx context.Context) (int, error) {
	pending, err := s.saleRepo.ListPending(ctx)
	if err != nil {
		return 0, err
	}

	for _, sale := range pending {
		s.logger.Warn("Abandoning dangling pending sale",
			"sale_id", sale.ID,
			"shift_id", sale.ShiftID,
			"timestamp", sale.Timestamp)
		if err := s.saleRepo.UpdateStatus(ctx, sale.ID, enum.SaleStatusAbandoned); err != nil {
			return 0, err
		}
	}
	return len(pending), nil
}

func fiscalItems(lines []entity.SaleLine) []fiscal.Item {
	items := make([]fiscal.Item, len(lines))
	for i, line := range lines {
		items[i] = fiscal.Item{
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		}
	}
	return items
}
