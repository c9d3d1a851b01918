package request

// RegisterCustomerRequest creates a loyalty account for a phone number.
type RegisterCustomerRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// CreditBonusRequest manually adds bonus to an account, in minor units.
type CreditBonusRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}
