package request

// CreateProductRequest adds a menu item. Price is in minor units. The
// ingredient spec uses the back-office format "milk:0.2;espresso:1" and is
// parsed strictly when recipes are rebuilt.
type CreateProductRequest struct {
	Name           string  `json:"name" binding:"required,min=2,max=255"`
	Category       string  `json:"category" binding:"required"`
	Price          int64   `json:"price" binding:"required,min=1"`
	IngredientSpec string  `json:"ingredient_spec"`
	Preparation    *string `json:"preparation"`
}

// CreateInventoryItemRequest adds a tracked ingredient.
type CreateInventoryItemRequest struct {
	Name              string  `json:"name" binding:"required,min=2,max=255"`
	Amount            float64 `json:"amount" binding:"min=0"`
	Unit              string  `json:"unit" binding:"required,max=20"`
	MinThreshold      float64 `json:"min_threshold" binding:"min=0"`
	CriticalThreshold float64 `json:"critical_threshold" binding:"min=0"`
}
