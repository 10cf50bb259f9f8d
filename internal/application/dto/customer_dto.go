package dto

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	TaxCode string `json:"taxCode" validate:"omitempty,max=50"`
	Address string `json:"address,omitempty" validate:"omitempty,max=300"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=50"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxCode string `json:"taxCode"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}
