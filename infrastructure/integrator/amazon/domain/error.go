package domain

// ErrorResponse é o corpo de erro padrão da Amazon Advertising API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
