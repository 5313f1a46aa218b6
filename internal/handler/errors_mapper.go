package handler

import (
	"errors"
	"net/http"

	appErrors "github.com/unclebandit/customer-service/internal/errors"
)

var errorStatusMap = map[error]int{
	appErrors.ErrNotFound:           http.StatusNotFound,
	appErrors.ErrConflict:           http.StatusConflict,
	appErrors.ErrIntegrityViolation: http.StatusConflict,
	appErrors.ErrValidation:         http.StatusBadRequest,
}

// StatusFromError maps an error kind to its HTTP status. Unknown errors are 500.
func StatusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
