package models

// TokenResponse is returned on a successful login
type TokenResponse struct {
	AccessToken string `json:"token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// LoginResponse bundles the issued token with the user profile
type LoginResponse struct {
	TokenResponse
	User *User `json:"user"`
}
