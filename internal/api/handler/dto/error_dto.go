package dto

import "time"

// ErrorResponse is the error body for every failed request.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Errors    []string  `json:"errors"`
}

func NewErrorResponse(path string, messages ...string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Path:      path,
		Errors:    messages,
	}
}
