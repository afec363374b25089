package handler

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/iho/lendpool/internal/adapter/http/dto"
	"github.com/iho/lendpool/internal/usecase"
)

// LiquidationService is the liquidation-facing slice of the use case layer.
type LiquidationService interface {
	Liquidate(ctx context.Context, liquidator, borrower string, amount *big.Int) (*usecase.LiquidationResult, error)
}

// LiquidationHandler handles liquidation HTTP requests.
type LiquidationHandler struct {
	liquidationSvc LiquidationService
}

// NewLiquidationHandler creates a new LiquidationHandler.
func NewLiquidationHandler(liquidationSvc LiquidationService) *LiquidationHandler {
	return &LiquidationHandler{liquidationSvc: liquidationSvc}
}

// Create repays part of an unhealthy borrower's debt and seizes shares.
func (h *LiquidationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.LiquidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := req.ParsedAmount()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	result, err := h.liquidationSvc.Liquidate(r.Context(), req.Liquidator, req.Borrower, amount)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to liquidate", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.LiquidationFromResult(result))
}
