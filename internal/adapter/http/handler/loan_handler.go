package handler

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/lendpool/internal/adapter/http/dto"
	"github.com/iho/lendpool/internal/usecase"
)

// LoanService is the borrowing-facing slice of the use case layer.
type LoanService interface {
	Borrow(ctx context.Context, account string, amount *big.Int) (*usecase.BorrowResult, error)
	Repay(ctx context.Context, account string, amount *big.Int) (*usecase.RepayResult, error)
	RepayAll(ctx context.Context, account string) (*usecase.RepayResult, error)
	AccrueInterest(ctx context.Context, account string) (*big.Int, error)
	CheckHealth(ctx context.Context, account string) (bool, error)
	ProjectedHealth(ctx context.Context, account string) (bool, error)
	Position(ctx context.Context, account string) (*usecase.PositionInfo, error)
}

// LoanHandler handles borrowing-related HTTP requests.
type LoanHandler struct {
	loanSvc LoanService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanSvc LoanService) *LoanHandler {
	return &LoanHandler{loanSvc: loanSvc}
}

// Borrow draws assets from the pool against share collateral.
func (h *LoanHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req dto.BorrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := req.ParsedAmount()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	result, err := h.loanSvc.Borrow(r.Context(), req.Account, amount)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to borrow", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.BorrowFromResult(result))
}

// Repay pays down debt. A zero amount settles interest without paying.
func (h *LoanHandler) Repay(w http.ResponseWriter, r *http.Request) {
	var req dto.RepayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := req.ParsedAmount()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	result, err := h.loanSvc.Repay(r.Context(), req.Account, amount)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to repay", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RepayFromResult(result))
}

// RepayAll clears the account's full debt including settled interest.
func (h *LoanHandler) RepayAll(w http.ResponseWriter, r *http.Request) {
	var req dto.RepayAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.loanSvc.RepayAll(r.Context(), req.Account)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to repay", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RepayFromResult(result))
}

// Accrue settles the account's interest up to now.
func (h *LoanHandler) Accrue(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	if account == "" {
		writeError(w, http.StatusBadRequest, "missing account", "")
		return
	}

	interest, err := h.loanSvc.AccrueInterest(r.Context(), account)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to accrue interest", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccrueResponse{
		Account:  account,
		Interest: interest.String(),
	})
}

// Health settles interest pool-wide and reports the account's standing.
func (h *LoanHandler) Health(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	if account == "" {
		writeError(w, http.StatusBadRequest, "missing account", "")
		return
	}

	healthy, err := h.loanSvc.CheckHealth(r.Context(), account)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to check health", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.HealthCheckResponse{
		Account: account,
		Healthy: healthy,
	})
}

// Get returns the account's position with projected health. No state moves.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	if account == "" {
		writeError(w, http.StatusBadRequest, "missing account", "")
		return
	}

	info, err := h.loanSvc.Position(r.Context(), account)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get position", err.Error())

		return
	}

	healthy, err := h.loanSvc.ProjectedHealth(r.Context(), account)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to project health", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PositionFromInfo(info, healthy))
}
