package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
)

func testProduct(name string, price int64, category enum.ProductCategory) *entity.Product {
	return &entity.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    price,
		Category: category,
	}
}

func TestOrderBuilderAddIncrementsExistingLine(t *testing.T) {
	cart := NewOrderBuilder()
	latte := testProduct("Latte", 19000, enum.ProductCategoryCoffee)

	cart.AddLine(latte)
	cart.AddLine(latte)

	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(38000), cart.RawTotal())
}

func TestOrderBuilderRemoveDecrementsAndDrops(t *testing.T) {
	cart := NewOrderBuilder()
	latte := testProduct("Latte", 19000, enum.ProductCategoryCoffee)
	croissant := testProduct("Croissant", 12000, enum.ProductCategoryFood)

	cart.AddLine(latte)
	cart.AddLine(latte)
	cart.AddLine(croissant)

	cart.RemoveLine(latte.ID)
	assert.Equal(t, int64(31000), cart.RawTotal())

	cart.RemoveLine(latte.ID)
	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, "Croissant", lines[0].Name)
}

func TestOrderBuilderRemoveAbsentProductIsNoop(t *testing.T) {
	cart := NewOrderBuilder()
	cart.AddLine(testProduct("Latte", 19000, enum.ProductCategoryCoffee))

	cart.RemoveLine(uuid.New())

	assert.Len(t, cart.Lines(), 1)
	assert.Equal(t, int64(19000), cart.RawTotal())
}

func TestOrderBuilderClear(t *testing.T) {
	cart := NewOrderBuilder()
	cart.AddLine(testProduct("Latte", 19000, enum.ProductCategoryCoffee))
	assert.False(t, cart.IsEmpty())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.RawTotal())
}

func TestOrderBuilderSnapshotIsDetached(t *testing.T) {
	cart := NewOrderBuilder()
	latte := testProduct("Latte", 19000, enum.ProductCategoryCoffee)
	cart.AddLine(latte)

	snapshot := cart.Lines()
	cart.AddLine(latte)

	assert.Equal(t, 1, snapshot[0].Quantity)
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
}

func TestCartRegistrySeparatesRegisters(t *testing.T) {
	registry := NewCartRegistry()
	latte := testProduct("Latte", 19000, enum.ProductCategoryCoffee)

	registry.Cart("till-1").AddLine(latte)

	assert.False(t, registry.Cart("till-1").IsEmpty())
	assert.True(t, registry.Cart("till-2").IsEmpty())
	assert.Same(t, registry.Cart("till-1"), registry.Cart("till-1"))

	registry.ClearAll()
	assert.True(t, registry.Cart("till-1").IsEmpty())
}
