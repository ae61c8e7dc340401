package dto

// AccountLoginRequest opens a session bound to one account.
type AccountLoginRequest struct {
	AccountID  string `json:"accountID" binding:"required"`
	Credential string `json:"credential" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"accountID,omitempty"`
}
