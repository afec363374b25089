package dto

import (
	"errors"
	"math/big"
	"strings"
)

// ErrInvalidAmount is returned when a request amount fails to parse.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a base-10 integer amount string.
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidAmount
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrInvalidAmount
	}
	return v, nil
}

// DepositRequest represents a request to deposit into the pool.
type DepositRequest struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

// ParsedAmount parses the request amount.
func (r *DepositRequest) ParsedAmount() (*big.Int, error) {
	return ParseAmount(r.Amount)
}

// WithdrawRequest represents a request to burn shares for assets.
// An omitted or "all" shares field withdraws the full balance.
type WithdrawRequest struct {
	Account string `json:"account"`
	Shares  string `json:"shares,omitempty"`
}

// All reports whether the request asks for a full withdrawal.
func (r *WithdrawRequest) All() bool {
	return r.Shares == "" || strings.EqualFold(r.Shares, "all")
}

// ParsedShares parses the share count for a partial withdrawal.
func (r *WithdrawRequest) ParsedShares() (*big.Int, error) {
	return ParseAmount(r.Shares)
}

// BorrowRequest represents a request to borrow against share collateral.
type BorrowRequest struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

// ParsedAmount parses the request amount.
func (r *BorrowRequest) ParsedAmount() (*big.Int, error) {
	return ParseAmount(r.Amount)
}

// RepayRequest represents a request to pay down debt. A zero amount
// settles interest without moving assets.
type RepayRequest struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

// ParsedAmount parses the request amount.
func (r *RepayRequest) ParsedAmount() (*big.Int, error) {
	return ParseAmount(r.Amount)
}

// RepayAllRequest represents a request to clear an account's full debt.
type RepayAllRequest struct {
	Account string `json:"account"`
}

// LiquidateRequest represents a request to liquidate an unhealthy borrower.
type LiquidateRequest struct {
	Liquidator string `json:"liquidator"`
	Borrower   string `json:"borrower"`
	Amount     string `json:"amount"`
}

// ParsedAmount parses the repayment amount.
func (r *LiquidateRequest) ParsedAmount() (*big.Int, error) {
	return ParseAmount(r.Amount)
}
