package domain

import "errors"

var (
	// Pool errors
	ErrZeroAmount            = errors.New("amount must be positive")
	ErrInsufficientShares    = errors.New("caller holds fewer shares than requested")
	ErrInsufficientLiquidity = errors.New("pool balance cannot cover the requested amount")

	// Loan errors
	ErrBorrowLimitExceeded = errors.New("borrow would exceed the collateral borrow limit")
	ErrNothingToRepay      = errors.New("account has no outstanding debt")
	ErrBorrowerHealthy     = errors.New("borrower position is not liquidatable")
	ErrPositionNotFound    = errors.New("borrower position not found")

	// Configuration errors
	ErrAlreadyConfigured    = errors.New("rate model is already bound")
	ErrInvalidConfiguration = errors.New("rate model binding is invalid")

	// Asset gateway errors
	ErrInsufficientFunds = errors.New("account balance cannot cover the transfer")
)
