package model

// GenerateRequest represents a password generation request.
// Every field is required; pointers distinguish a missing field from its zero value.
type GenerateRequest struct {
	Length       *int  `json:"length"`
	UseUppercase *bool `json:"use_uppercase"`
	UseLowercase *bool `json:"use_lowercase"`
	UseNumbers   *bool `json:"use_numbers"`
	UseSymbols   *bool `json:"use_symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string `json:"password"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
