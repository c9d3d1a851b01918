package request

// CartLineRequest adds or removes one unit of a product on the register's
// current order.
type CartLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// CheckoutRequest finalizes the register's current order.
type CheckoutRequest struct {
	// Phone identifies the loyalty account; empty means an anonymous sale.
	Phone string `json:"phone"`
	// ApplyBonus debits the account's balance against the order total.
	ApplyBonus bool `json:"apply_bonus"`
}
