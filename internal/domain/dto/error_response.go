package dto

import "time"

// ErrorResponse is the uniform JSON error body returned by every endpoint.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid date format"`
	ErrorDetails string    `json:"error,omitempty" example:"parsing time \"2024/03/05\""`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel through c.Error().
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err may be nil.
func NewErrorResponse(msg string, err error) ErrorResponse {
	resp := ErrorResponse{Message: msg, Timestamp: time.Now()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
