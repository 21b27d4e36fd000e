package auth

import "github.com/nearbuy-market/storefront-gateway/internal/upstream"

// RegisterInput is the storefront registration payload.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name,omitempty" validate:"max=150"`
	LastName  string `json:"last_name,omitempty" validate:"max=150"`
	UserType  string `json:"user_type,omitempty" validate:"omitempty,oneof=consumer retailer"`
	Phone     string `json:"phone,omitempty" validate:"max=15"`
	Address   string `json:"address,omitempty"`
}

func (r RegisterInput) toUpstream() upstream.NewUser {
	return upstream.NewUser{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		UserType:  r.UserType,
		Phone:     r.Phone,
		Address:   r.Address,
	}
}
