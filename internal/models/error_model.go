package models

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Error kinds carried in ErrorResponse.Error.
const (
	ErrorKindNotFound     = "not_found"
	ErrorKindConflict     = "conflict"
	ErrorKindUnauthorized = "unauthorized"
	ErrorKindValidation   = "validation_error"
	ErrorKindUpstream     = "upstream_error"
	ErrorKindRateLimited  = "rate_limited"
)
