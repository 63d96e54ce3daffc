package server

import (
	"github.com/go-playground/validator/v10"

	"traingame/internal/solver"
)

var requestValidate = validator.New()

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	Operands []int `json:"operands" validate:"required,len=4"`
}

// Validate checks the request against its struct tags.
func (r *SolveRequest) Validate() error {
	return requestValidate.Struct(r)
}

// SolveResponse is returned by both solve endpoints.
type SolveResponse struct {
	RequestID string          `json:"request_id"`
	Operands  solver.Operands `json:"operands"`
	Solutions []string        `json:"solutions"`
	Count     int             `json:"count"`
	Message   string          `json:"message,omitempty"`
}

// ErrorResponse is returned for any 4xx.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the error code (optional).
	Code string `json:"code,omitempty"`
}
