package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	"github.com/brewforge/shift-engine/pkg/fiscal"
	"github.com/brewforge/shift-engine/pkg/logger"
	"github.com/brewforge/shift-engine/pkg/pagination"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: "text"})
}

// --- shift repository fake ---

type fakeShiftRepo struct {
	mu     sync.Mutex
	shifts map[uuid.UUID]*entity.Shift
	fail   bool
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[uuid.UUID]*entity.Shift)}
}

func (r *fakeShiftRepo) OpenShift(ctx context.Context, shift *entity.Shift) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return false, context.DeadlineExceeded
	}
	for _, s := range r.shifts {
		if s.State == enum.ShiftStateOpen {
			return false, nil
		}
	}
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	cp := *shift
	r.shifts[shift.ID] = &cp
	return true, nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[id]
	if !ok {
		return nil, context.DeadlineExceeded
	}
	cp := *s
	return &cp, nil
}

func (r *fakeShiftRepo) GetOpen(ctx context.Context) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, context.DeadlineExceeded
	}
	for _, s := range r.shifts {
		if s.State == enum.ShiftStateOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) CloseShift(ctx context.Context, id uuid.UUID, closedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[id]
	if !ok || s.State != enum.ShiftStateOpen {
		return false, nil
	}
	s.State = enum.ShiftStateClosed
	s.ClosedAt = &closedAt
	return true, nil
}

func (r *fakeShiftRepo) ApplySale(ctx context.Context, shiftID uuid.UUID, total int64, coffeeCount, foodCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[shiftID]
	if !ok || s.State != enum.ShiftStateOpen {
		return context.DeadlineExceeded
	}
	s.TotalSales += total
	s.Transactions++
	s.CoffeeCount += coffeeCount
	s.FoodCount += foodCount
	return nil
}

func (r *fakeShiftRepo) List(ctx context.Context, limit int) ([]entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Shift, 0, len(r.shifts))
	for _, s := range r.shifts {
		out = append(out, *s)
	}
	return out, nil
}

// --- customer repository fake ---

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
	// debitHook runs between GetByPhone and ConditionalDebit observations,
	// used to simulate a concurrent debit from another register.
	debitHook func()
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[phone]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *customer
	r.customers[customer.Phone] = &cp
	return nil
}

func (r *fakeCustomerRepo) AtomicCredit(ctx context.Context, phone string, amount int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[phone]
	if !ok {
		return false, nil
	}
	c.BonusBalance += amount
	return true, nil
}

func (r *fakeCustomerRepo) ConditionalDebit(ctx context.Context, phone string, amount int64) (bool, error) {
	if r.debitHook != nil {
		r.debitHook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[phone]
	if !ok || c.BonusBalance < amount {
		return false, nil
	}
	c.BonusBalance -= amount
	return true, nil
}

// --- inventory and recipe repository fakes ---

type fakeInventoryRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.InventoryItem
	fail  bool
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: make(map[uuid.UUID]*entity.InventoryItem)}
}

func (r *fakeInventoryRepo) add(item entity.InventoryItem) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.Status = item.ComputeStatus()
	r.items[item.ID] = &item
	return item.ID
}

func (r *fakeInventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	item.ID = r.add(*item)
	return nil
}

func (r *fakeInventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeInventoryRepo) GetByName(ctx context.Context, name string) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Name == name {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) List(ctx context.Context) ([]entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeInventoryRepo) ListByStatus(ctx context.Context, statuses ...enum.StockStatus) ([]entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.InventoryItem
	for _, item := range r.items {
		for _, st := range statuses {
			if item.Status == st {
				out = append(out, *item)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) DeductFloored(ctx context.Context, id uuid.UUID, amount float64) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, context.DeadlineExceeded
	}
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	item.Amount -= amount
	if item.Amount < 0 {
		item.Amount = 0
	}
	cp := *item
	return &cp, nil
}

func (r *fakeInventoryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.StockStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return context.DeadlineExceeded
	}
	item.Status = status
	return nil
}

type fakeRecipeRepo struct {
	mu      sync.Mutex
	recipes map[uuid.UUID]*entity.Recipe
	fail    bool
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[uuid.UUID]*entity.Recipe)}
}

func (r *fakeRecipeRepo) GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, context.DeadlineExceeded
	}
	recipe, ok := r.recipes[productID]
	if !ok {
		return nil, nil
	}
	cp := *recipe
	return &cp, nil
}

func (r *fakeRecipeRepo) Replace(ctx context.Context, recipe *entity.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *recipe
	r.recipes[recipe.ProductID] = &cp
	return nil
}

func (r *fakeRecipeRepo) List(ctx context.Context) ([]entity.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		out = append(out, *recipe)
	}
	return out, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

// --- sale repository fake ---

type fakeSaleRepo struct {
	mu           sync.Mutex
	sales        map[uuid.UUID]*entity.Sale
	order        []uuid.UUID
	failFinalize bool
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (r *fakeSaleRepo) CreatePending(ctx context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.Status = enum.SaleStatusPending
	cp := *sale
	r.sales[sale.ID] = &cp
	r.order = append(r.order, sale.ID)
	return nil
}

func (r *fakeSaleRepo) Finalize(ctx context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFinalize {
		return context.DeadlineExceeded
	}
	stored, ok := r.sales[sale.ID]
	if !ok || stored.Status != enum.SaleStatusPending {
		return context.DeadlineExceeded
	}
	sale.Status = enum.SaleStatusCommitted
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) ListByShift(ctx context.Context, shiftID uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, id := range r.order {
		if r.sales[id].ShiftID == shiftID {
			out = append(out, *r.sales[id])
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListPending(ctx context.Context) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, id := range r.order {
		if r.sales[id].Status == enum.SaleStatusPending {
			out = append(out, *r.sales[id])
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return context.DeadlineExceeded
	}
	s.Status = status
	return nil
}

// --- fiscal gateway fake ---

type fakeGateway struct {
	mu        sync.Mutex
	fail      bool
	submitted []int64
}

func (g *fakeGateway) Submit(ctx context.Context, items []fiscal.Item, total int64) (*fiscal.Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return nil, context.DeadlineExceeded
	}
	g.submitted = append(g.submitted, total)
	return &fiscal.Receipt{
		FiscalSign:     "1234567890",
		DocumentNumber: "42",
		DriveNumber:    "9999078900001234",
	}, nil
}

func (g *fakeGateway) IsAvailable(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.fail
}
