package dto

import (
	"math/big"
	"time"

	"github.com/iho/lendpool/internal/usecase"
)

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// PoolResponse represents the pool totals in API responses.
type PoolResponse struct {
	TotalDeposited     string `json:"total_deposited"`
	TotalShares        string `json:"total_shares"`
	TotalBorrowed      string `json:"total_borrowed"`
	AvailableLiquidity string `json:"available_liquidity"`
	Utilization        string `json:"utilization"`
}

// PoolFromStats converts pool stats to a response.
func PoolFromStats(s *usecase.PoolStats) *PoolResponse {
	return &PoolResponse{
		TotalDeposited:     amountString(s.TotalDeposited),
		TotalShares:        amountString(s.TotalShares),
		TotalBorrowed:      amountString(s.TotalBorrowed),
		AvailableLiquidity: amountString(s.AvailableLiquidity),
		Utilization:        amountString(s.UtilizationWad),
	}
}

// DepositResponse represents a completed deposit.
type DepositResponse struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
	Shares  string `json:"shares"`
}

// DepositFromResult converts a deposit result to a response.
func DepositFromResult(r *usecase.DepositResult) *DepositResponse {
	return &DepositResponse{
		Account: r.Account,
		Amount:  amountString(r.Amount),
		Shares:  amountString(r.Shares),
	}
}

// WithdrawResponse represents a completed withdrawal.
type WithdrawResponse struct {
	Account string `json:"account"`
	Shares  string `json:"shares"`
	Amount  string `json:"amount"`
}

// WithdrawFromResult converts a withdrawal result to a response.
func WithdrawFromResult(r *usecase.WithdrawResult) *WithdrawResponse {
	return &WithdrawResponse{
		Account: r.Account,
		Shares:  amountString(r.Shares),
		Amount:  amountString(r.Amount),
	}
}

// QuoteResponse represents a share price quote.
type QuoteResponse struct {
	Amount string `json:"amount,omitempty"`
	Shares string `json:"shares,omitempty"`
}

// BorrowResponse represents a completed borrow.
type BorrowResponse struct {
	Account   string `json:"account"`
	Amount    string `json:"amount"`
	Principal string `json:"principal"`
}

// BorrowFromResult converts a borrow result to a response.
func BorrowFromResult(r *usecase.BorrowResult) *BorrowResponse {
	return &BorrowResponse{
		Account:   r.Account,
		Amount:    amountString(r.Amount),
		Principal: amountString(r.Principal),
	}
}

// RepayResponse represents a completed repayment.
type RepayResponse struct {
	Account       string `json:"account"`
	Repaid        string `json:"repaid"`
	InterestPaid  string `json:"interest_paid"`
	PrincipalPaid string `json:"principal_paid"`
	Remaining     string `json:"remaining"`
}

// RepayFromResult converts a repayment result to a response.
func RepayFromResult(r *usecase.RepayResult) *RepayResponse {
	return &RepayResponse{
		Account:       r.Account,
		Repaid:        amountString(r.Repaid),
		InterestPaid:  amountString(r.InterestPaid),
		PrincipalPaid: amountString(r.PrincipalPaid),
		Remaining:     amountString(r.Remaining),
	}
}

// AccrueResponse reports interest settled by an explicit accrual.
type AccrueResponse struct {
	Account  string `json:"account"`
	Interest string `json:"interest"`
}

// HealthCheckResponse reports a borrower's standing after settlement.
type HealthCheckResponse struct {
	Account string `json:"account"`
	Healthy bool   `json:"healthy"`
}

// PositionResponse represents a borrower's standing in API responses.
type PositionResponse struct {
	Account       string     `json:"account"`
	Principal     string     `json:"principal"`
	LastAccrual   *time.Time `json:"last_accrual,omitempty"`
	ShareBalance  string     `json:"share_balance"`
	BorrowLimit   string     `json:"borrow_limit"`
	MaxBorrowable string     `json:"max_borrowable"`
	Healthy       bool       `json:"healthy"`
}

// PositionFromInfo converts a position snapshot to a response.
func PositionFromInfo(p *usecase.PositionInfo, healthy bool) *PositionResponse {
	resp := &PositionResponse{
		Account:       p.Account,
		Principal:     amountString(p.Principal),
		ShareBalance:  amountString(p.ShareBalance),
		BorrowLimit:   amountString(p.BorrowLimit),
		MaxBorrowable: amountString(p.MaxBorrowable),
		Healthy:       healthy,
	}
	if !p.LastAccrual.IsZero() {
		t := p.LastAccrual
		resp.LastAccrual = &t
	}
	return resp
}

// LiquidationResponse represents a completed liquidation.
type LiquidationResponse struct {
	Liquidator   string `json:"liquidator"`
	Borrower     string `json:"borrower"`
	Repaid       string `json:"repaid"`
	SeizedShares string `json:"seized_shares"`
	SeizedValue  string `json:"seized_value"`
}

// LiquidationFromResult converts a liquidation result to a response.
func LiquidationFromResult(r *usecase.LiquidationResult) *LiquidationResponse {
	return &LiquidationResponse{
		Liquidator:   r.Liquidator,
		Borrower:     r.Borrower,
		Repaid:       amountString(r.Repaid),
		SeizedShares: amountString(r.SeizedShares),
		SeizedValue:  amountString(r.SeizedValue),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
