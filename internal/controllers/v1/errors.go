package v1

import (
	"errors"
	"net/http"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
)

type httpError struct {
	Error   string `json:"error" example:"the specified resource ID is not a valid UUID"`
	Details string `json:"details,omitempty" example:"no such table: households"` // Underlying message for unexpected server errors
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)

// Statement errors
var (
	errStatementNotSent = errors.New("the statement has not been generated for sending yet")
)
