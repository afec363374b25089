package domain

import "time"

// Event types
const (
	EventTypeDeposited        = "pool.deposited"
	EventTypeWithdrawn        = "pool.withdrawn"
	EventTypeBorrowed         = "loan.borrowed"
	EventTypeRepaid           = "loan.repaid"
	EventTypeInterestAccrued  = "loan.accrued"
	EventTypeLiquidated       = "loan.liquidated"
)

// Aggregate types
const (
	AggregateTypePool = "pool"
	AggregateTypeLoan = "loan"
)

// OutboxEvent represents an event to be published.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// DepositedEvent payload
type DepositedEvent struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
	Shares  string `json:"shares"`
}

// WithdrawnEvent payload
type WithdrawnEvent struct {
	Account string `json:"account"`
	Shares  string `json:"shares"`
	Amount  string `json:"amount"`
}

// BorrowedEvent payload
type BorrowedEvent struct {
	Account   string `json:"account"`
	Amount    string `json:"amount"`
	Principal string `json:"principal"`
}

// RepaidEvent payload
type RepaidEvent struct {
	Account       string `json:"account"`
	Amount        string `json:"amount"`
	InterestPaid  string `json:"interest_paid"`
	PrincipalPaid string `json:"principal_paid"`
}

// InterestAccruedEvent payload
type InterestAccruedEvent struct {
	Account  string `json:"account"`
	Interest string `json:"interest"`
}

// LiquidatedEvent payload
type LiquidatedEvent struct {
	Liquidator  string `json:"liquidator"`
	Borrower    string `json:"borrower"`
	Repaid      string `json:"repaid"`
	SeizedValue string `json:"seized_value"`
}
