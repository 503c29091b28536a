package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DataResponse is the success envelope every gateway endpoint returns.
type DataResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the failure envelope. Details carries the best-effort
// human-readable description of an internal failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// TrackResponse is the always-success envelope of the tracking endpoint. The
// Error field, when set, describes an absorbed delivery failure; it does not
// change the success status.
type TrackResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Error     string `json:"error,omitempty"`
}

func respondData(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, DataResponse{Success: true, Data: data, Message: message})
}

func respondError(c *gin.Context, status int, errMsg, details string) {
	c.JSON(status, ErrorResponse{Error: errMsg, Details: details})
}
