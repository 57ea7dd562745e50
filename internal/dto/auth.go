package dto

import "github.com/finsight/finsight_backend/internal/core/domain"

// RegisterBusinessRequest is the payload for POST /auth/register.
type RegisterBusinessRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegisteredBusinessData is the data envelope returned on registration.
type RegisteredBusinessData struct {
	ID                string `json:"_id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	StripeRedirectURL string `json:"stripeRedirectUrl"`
	Token             string `json:"token"`
}

// RegisterBusinessResponse wraps a successful registration.
type RegisterBusinessResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    RegisteredBusinessData `json:"data"`
}

// ToRegisterBusinessResponse builds the registration response envelope.
func ToRegisterBusinessResponse(b *domain.Business, stripeRedirectURL, token string) RegisterBusinessResponse {
	return RegisterBusinessResponse{
		Success: true,
		Message: "Business account created successfully",
		Data: RegisteredBusinessData{
			ID:                b.BusinessID,
			Name:              b.Name,
			Email:             b.Email,
			StripeRedirectURL: stripeRedirectURL,
			Token:             token,
		},
	}
}
