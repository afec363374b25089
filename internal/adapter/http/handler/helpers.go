package handler

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"

	"github.com/iho/lendpool/internal/adapter/http/dto"
	"github.com/iho/lendpool/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrPositionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrZeroAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientShares):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInsufficientLiquidity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrBorrowLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNothingToRepay):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrBorrowerHealthy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAlreadyConfigured):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseAmountQuery parses a base-10 integer query parameter.
func parseAmountQuery(r *http.Request, key string) (*big.Int, error) {
	return dto.ParseAmount(r.URL.Query().Get(key))
}
