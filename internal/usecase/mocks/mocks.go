package mocks

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/iho/lendpool/internal/domain"
	"github.com/iho/lendpool/internal/usecase"
)

// MockPoolRepository is a mock implementation of PoolRepository backed by a
// single in-memory pool.
type MockPoolRepository struct {
	mu   sync.RWMutex
	pool *domain.Pool

	GetFunc          func(ctx context.Context) (*domain.Pool, error)
	GetForUpdateFunc func(ctx context.Context, tx usecase.Transaction) (*domain.Pool, error)
	UpdateFunc       func(ctx context.Context, tx usecase.Transaction, pool *domain.Pool) error
}

func NewMockPoolRepository() *MockPoolRepository {
	return &MockPoolRepository{pool: domain.NewPool()}
}

func (m *MockPoolRepository) Get(ctx context.Context) (*domain.Pool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pool, nil
}

func (m *MockPoolRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.Pool, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx)
	}
	return m.Get(ctx)
}

func (m *MockPoolRepository) Update(ctx context.Context, tx usecase.Transaction, pool *domain.Pool) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, pool)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pool = pool
	return nil
}

// MockPositionRepository is a mock implementation of PositionRepository.
type MockPositionRepository struct {
	mu        sync.RWMutex
	positions map[string]*domain.Position

	GetFunc                 func(ctx context.Context, account string) (*domain.Position, error)
	GetForUpdateFunc        func(ctx context.Context, tx usecase.Transaction, account string) (*domain.Position, error)
	EnsureForUpdateFunc     func(ctx context.Context, tx usecase.Transaction, account string, now time.Time) (*domain.Position, error)
	ListActiveForUpdateFunc func(ctx context.Context, tx usecase.Transaction) ([]*domain.Position, error)
	UpdateFunc              func(ctx context.Context, tx usecase.Transaction, position *domain.Position) error
}

func NewMockPositionRepository() *MockPositionRepository {
	return &MockPositionRepository{
		positions: make(map[string]*domain.Position),
	}
}

func (m *MockPositionRepository) Get(ctx context.Context, account string) (*domain.Position, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, account)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if pos, ok := m.positions[account]; ok {
		return pos, nil
	}
	return nil, domain.ErrPositionNotFound
}

func (m *MockPositionRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, account string) (*domain.Position, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, account)
	}
	return m.Get(ctx, account)
}

func (m *MockPositionRepository) EnsureForUpdate(ctx context.Context, tx usecase.Transaction, account string, now time.Time) (*domain.Position, error) {
	if m.EnsureForUpdateFunc != nil {
		return m.EnsureForUpdateFunc(ctx, tx, account, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if pos, ok := m.positions[account]; ok {
		return pos, nil
	}
	pos := domain.NewPosition(account, now)
	m.positions[account] = pos
	return pos, nil
}

func (m *MockPositionRepository) ListActiveForUpdate(ctx context.Context, tx usecase.Transaction) ([]*domain.Position, error) {
	if m.ListActiveForUpdateFunc != nil {
		return m.ListActiveForUpdateFunc(ctx, tx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active []*domain.Position
	for _, pos := range m.positions {
		if pos.HasDebt() {
			active = append(active, pos)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Account < active[j].Account })
	return active, nil
}

func (m *MockPositionRepository) Update(ctx context.Context, tx usecase.Transaction, position *domain.Position) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, position)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[position.Account] = position
	return nil
}

// Count returns how many positions exist, including settled ones.
func (m *MockPositionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.positions)
}

// MockShareRepository is a mock implementation of ShareRepository.
type MockShareRepository struct {
	mu       sync.RWMutex
	balances map[string]*big.Int

	GetFunc          func(ctx context.Context, account string) (*big.Int, error)
	GetForUpdateFunc func(ctx context.Context, tx usecase.Transaction, account string) (*big.Int, error)
	AddFunc          func(ctx context.Context, tx usecase.Transaction, account string, amount *big.Int, now time.Time) error
	SubFunc          func(ctx context.Context, tx usecase.Transaction, account string, amount *big.Int, now time.Time) error
}

func NewMockShareRepository() *MockShareRepository {
	return &MockShareRepository{
		balances: make(map[string]*big.Int),
	}
}

func (m *MockShareRepository) Get(ctx context.Context, account string) (*big.Int, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, account)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if bal, ok := m.balances[account]; ok {
		return new(big.Int).Set(bal), nil
	}
	return big.NewInt(0), nil
}

func (m *MockShareRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, account string) (*big.Int, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, account)
	}
	return m.Get(ctx, account)
}

func (m *MockShareRepository) Add(ctx context.Context, tx usecase.Transaction, account string, amount *big.Int, now time.Time) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, tx, account, amount, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bal, ok := m.balances[account]
	if !ok {
		bal = big.NewInt(0)
		m.balances[account] = bal
	}
	bal.Add(bal, amount)
	return nil
}

func (m *MockShareRepository) Sub(ctx context.Context, tx usecase.Transaction, account string, amount *big.Int, now time.Time) error {
	if m.SubFunc != nil {
		return m.SubFunc(ctx, tx, account, amount, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bal, ok := m.balances[account]
	if !ok || bal.Cmp(amount) < 0 {
		return domain.ErrInsufficientShares
	}
	bal.Sub(bal, amount)
	return nil
}

// MockAssetGateway is a mock implementation of AssetGateway. It tracks user
// balances and the pool's cash; Pull fails when the source cannot cover the
// amount, matching the all-or-nothing contract.
type MockAssetGateway struct {
	mu       sync.RWMutex
	balances map[string]*big.Int
	poolCash *big.Int

	PullFunc func(ctx context.Context, tx usecase.Transaction, from string, amount *big.Int) error
	PushFunc func(ctx context.Context, tx usecase.Transaction, to string, amount *big.Int) error
}

func NewMockAssetGateway() *MockAssetGateway {
	return &MockAssetGateway{
		balances: make(map[string]*big.Int),
		poolCash: big.NewInt(0),
	}
}

// Fund credits an account with asset units.
func (m *MockAssetGateway) Fund(account string, amount *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bal, ok := m.balances[account]
	if !ok {
		bal = big.NewInt(0)
		m.balances[account] = bal
	}
	bal.Add(bal, amount)
}

// Balance returns an account's asset balance.
func (m *MockAssetGateway) Balance(account string) *big.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if bal, ok := m.balances[account]; ok {
		return new(big.Int).Set(bal)
	}
	return big.NewInt(0)
}

// PoolCash returns the asset units held by the pool itself.
func (m *MockAssetGateway) PoolCash() *big.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return new(big.Int).Set(m.poolCash)
}

func (m *MockAssetGateway) Pull(ctx context.Context, tx usecase.Transaction, from string, amount *big.Int) error {
	if m.PullFunc != nil {
		return m.PullFunc(ctx, tx, from, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bal, ok := m.balances[from]
	if !ok || bal.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	bal.Sub(bal, amount)
	m.poolCash.Add(m.poolCash, amount)
	return nil
}

func (m *MockAssetGateway) Push(ctx context.Context, tx usecase.Transaction, to string, amount *big.Int) error {
	if m.PushFunc != nil {
		return m.PushFunc(ctx, tx, to, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.poolCash.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	m.poolCash.Sub(m.poolCash, amount)
	bal, ok := m.balances[to]
	if !ok {
		bal = big.NewInt(0)
		m.balances[to] = bal
	}
	bal.Add(bal, amount)
	return nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository that
// collects created events for inspection.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return nil
}

// Events returns every created event, published or not.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

// EventsOfType returns created events matching eventType, in creation order.
func (m *MockOutboxRepository) EventsOfType(eventType string) []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockClock is a manually advanced Clock.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set pins the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// MockRateModel is a mock implementation of RateModel returning a fixed
// per-second rate.
type MockRateModel struct {
	mu            sync.Mutex
	rate          *big.Int
	notifications []*big.Int

	NotifyUtilizationFunc func(ctx context.Context, utilization *big.Int) error
	RatePerSecondFunc     func(ctx context.Context, utilization *big.Int) *big.Int
}

func NewMockRateModel(ratePerSecond *big.Int) *MockRateModel {
	return &MockRateModel{rate: ratePerSecond}
}

func (m *MockRateModel) NotifyUtilization(ctx context.Context, utilization *big.Int) error {
	if m.NotifyUtilizationFunc != nil {
		return m.NotifyUtilizationFunc(ctx, utilization)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, new(big.Int).Set(utilization))
	return nil
}

func (m *MockRateModel) RatePerSecond(ctx context.Context, utilization *big.Int) *big.Int {
	if m.RatePerSecondFunc != nil {
		return m.RatePerSecondFunc(ctx, utilization)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return new(big.Int).Set(m.rate)
}

// Notifications returns the utilization samples received so far.
func (m *MockRateModel) Notifications() []*big.Int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*big.Int, len(m.notifications))
	copy(out, m.notifications)
	return out
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
