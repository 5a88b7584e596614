package request

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=255"`
	CPF        *string `json:"cpf" binding:"omitempty,max=14"`
	RG         *string `json:"rg" binding:"omitempty,max=20"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	Occupation *string `json:"occupation" binding:"omitempty,max=100"`
	BirthDate  *Date   `json:"birth_date"`
	Address    *string `json:"address"`
	Notes      *string `json:"notes"`
}

// UpdateClientRequest represents a client update request
type UpdateClientRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=255"`
	CPF        *string `json:"cpf" binding:"omitempty,max=14"`
	RG         *string `json:"rg" binding:"omitempty,max=20"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	Occupation *string `json:"occupation" binding:"omitempty,max=100"`
	BirthDate  *Date   `json:"birth_date"`
	Address    *string `json:"address"`
	Notes      *string `json:"notes"`
}
