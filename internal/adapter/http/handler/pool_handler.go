package handler

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"time"

	"github.com/iho/lendpool/internal/adapter/http/dto"
	"github.com/iho/lendpool/internal/usecase"
)

const (
	poolStatsCacheKey = "pool:stats"
	poolStatsCacheTTL = time.Second
)

// PoolService is the pool-facing slice of the use case layer.
type PoolService interface {
	Deposit(ctx context.Context, account string, amount *big.Int) (*usecase.DepositResult, error)
	Withdraw(ctx context.Context, account string, shares *big.Int) (*usecase.WithdrawResult, error)
	WithdrawAll(ctx context.Context, account string) (*usecase.WithdrawResult, error)
	Stats(ctx context.Context) (*usecase.PoolStats, error)
	QuoteSharesForAmount(ctx context.Context, amount *big.Int) (*big.Int, error)
	QuoteAmountForShares(ctx context.Context, shares *big.Int) (*big.Int, error)
}

// PoolHandler handles pool-related HTTP requests.
type PoolHandler struct {
	poolSvc PoolService
	cache   usecase.Cache
}

// NewPoolHandler creates a new PoolHandler. The cache is optional and only
// serves the stats endpoint.
func NewPoolHandler(poolSvc PoolService, cache usecase.Cache) *PoolHandler {
	return &PoolHandler{poolSvc: poolSvc, cache: cache}
}

// Deposit adds assets to the pool and mints shares.
func (h *PoolHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := req.ParsedAmount()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	result, err := h.poolSvc.Deposit(r.Context(), req.Account, amount)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to deposit", err.Error())

		return
	}

	h.invalidateStats(r.Context())
	writeJSON(w, http.StatusCreated, dto.DepositFromResult(result))
}

// Withdraw burns shares and pays out assets. An omitted or "all" share
// count withdraws the full balance.
func (h *PoolHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var result *usecase.WithdrawResult
	var err error
	if req.All() {
		result, err = h.poolSvc.WithdrawAll(r.Context(), req.Account)
	} else {
		var shares *big.Int
		shares, err = req.ParsedShares()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid shares", err.Error())
			return
		}
		result, err = h.poolSvc.Withdraw(r.Context(), req.Account, shares)
	}
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to withdraw", err.Error())

		return
	}

	h.invalidateStats(r.Context())
	writeJSON(w, http.StatusCreated, dto.WithdrawFromResult(result))
}

// Stats returns the pool totals.
func (h *PoolHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if cached, err := h.cache.Get(r.Context(), poolStatsCacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	stats, err := h.poolSvc.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read pool", err.Error())
		return
	}

	resp := dto.PoolFromStats(stats)
	if h.cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			h.cache.Set(r.Context(), poolStatsCacheKey, string(body), poolStatsCacheTTL)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// QuoteShares quotes the shares minted for a deposit amount.
func (h *PoolHandler) QuoteShares(w http.ResponseWriter, r *http.Request) {
	amount, err := parseAmountQuery(r, "amount")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	shares, err := h.poolSvc.QuoteSharesForAmount(r.Context(), amount)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to quote shares", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteResponse{Shares: shares.String()})
}

// QuoteAmount quotes the asset value of a share count.
func (h *PoolHandler) QuoteAmount(w http.ResponseWriter, r *http.Request) {
	shares, err := parseAmountQuery(r, "shares")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shares", err.Error())
		return
	}

	amount, err := h.poolSvc.QuoteAmountForShares(r.Context(), shares)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to quote amount", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteResponse{Amount: amount.String()})
}

func (h *PoolHandler) invalidateStats(ctx context.Context) {
	if h.cache != nil {
		h.cache.Delete(ctx, poolStatsCacheKey)
	}
}
