package dto

// LoginRequest represents the credentials for a local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleExchangeCodeRequest carries the authorization code the frontend
// received from Google.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
