package request

// OpenShiftRequest starts a new work shift.
type OpenShiftRequest struct {
	Operator string `json:"operator" binding:"required,min=2,max=255"`
	PIN      string `json:"pin"`
}

// CloseShiftRequest finalizes the current shift.
type CloseShiftRequest struct {
	PIN string `json:"pin"`
}
