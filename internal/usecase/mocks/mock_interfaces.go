//	mockgen -destination=internal/usecase/mocks/mock_interfaces.go -package=mocks -mock_names=PoolRepository=MockGenPoolRepository,AssetGateway=MockGenAssetGateway,RateModel=MockGenRateModel,Retrier=MockGenRetrier,Clock=MockGenClock github.com/iho/lendpool/internal/usecase PoolRepository,AssetGateway,RateModel,Retrier,Clock
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	big "math/big"
	reflect "reflect"
	time "time"

	domain "github.com/iho/lendpool/internal/domain"
	usecase "github.com/iho/lendpool/internal/usecase"
	gomock "go.uber.org/mock/gomock"
)

// MockGenPoolRepository is a mock of PoolRepository interface.
type MockGenPoolRepository struct {
	ctrl     *gomock.Controller
	recorder *MockGenPoolRepositoryMockRecorder
	isgomock struct{}
}

// MockGenPoolRepositoryMockRecorder is the mock recorder for MockGenPoolRepository.
type MockGenPoolRepositoryMockRecorder struct {
	mock *MockGenPoolRepository
}

// NewMockGenPoolRepository creates a new mock instance.
func NewMockGenPoolRepository(ctrl *gomock.Controller) *MockGenPoolRepository {
	mock := &MockGenPoolRepository{ctrl: ctrl}
	mock.recorder = &MockGenPoolRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGenPoolRepository) EXPECT() *MockGenPoolRepositoryMockRecorder {
	return m.recorder
}

// Get mocks base method.
func (m *MockGenPoolRepository) Get(ctx context.Context) (*domain.Pool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx)
	ret0, _ := ret[0].(*domain.Pool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockGenPoolRepositoryMockRecorder) Get(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockGenPoolRepository)(nil).Get), ctx)
}

// GetForUpdate mocks base method.
func (m *MockGenPoolRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.Pool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetForUpdate", ctx, tx)
	ret0, _ := ret[0].(*domain.Pool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetForUpdate indicates an expected call of GetForUpdate.
func (mr *MockGenPoolRepositoryMockRecorder) GetForUpdate(ctx, tx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetForUpdate", reflect.TypeOf((*MockGenPoolRepository)(nil).GetForUpdate), ctx, tx)
}

// Update mocks base method.
func (m *MockGenPoolRepository) Update(ctx context.Context, tx usecase.Transaction, pool *domain.Pool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, tx, pool)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockGenPoolRepositoryMockRecorder) Update(ctx, tx, pool any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockGenPoolRepository)(nil).Update), ctx, tx, pool)
}

// MockGenAssetGateway is a mock of AssetGateway interface.
type MockGenAssetGateway struct {
	ctrl     *gomock.Controller
	recorder *MockGenAssetGatewayMockRecorder
	isgomock struct{}
}

// MockGenAssetGatewayMockRecorder is the mock recorder for MockGenAssetGateway.
type MockGenAssetGatewayMockRecorder struct {
	mock *MockGenAssetGateway
}

// NewMockGenAssetGateway creates a new mock instance.
func NewMockGenAssetGateway(ctrl *gomock.Controller) *MockGenAssetGateway {
	mock := &MockGenAssetGateway{ctrl: ctrl}
	mock.recorder = &MockGenAssetGatewayMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGenAssetGateway) EXPECT() *MockGenAssetGatewayMockRecorder {
	return m.recorder
}

// Pull mocks base method.
func (m *MockGenAssetGateway) Pull(ctx context.Context, tx usecase.Transaction, from string, amount *big.Int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Pull", ctx, tx, from, amount)
	ret0, _ := ret[0].(error)
	return ret0
}

// Pull indicates an expected call of Pull.
func (mr *MockGenAssetGatewayMockRecorder) Pull(ctx, tx, from, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Pull", reflect.TypeOf((*MockGenAssetGateway)(nil).Pull), ctx, tx, from, amount)
}

// Push mocks base method.
func (m *MockGenAssetGateway) Push(ctx context.Context, tx usecase.Transaction, to string, amount *big.Int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Push", ctx, tx, to, amount)
	ret0, _ := ret[0].(error)
	return ret0
}

// Push indicates an expected call of Push.
func (mr *MockGenAssetGatewayMockRecorder) Push(ctx, tx, to, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Push", reflect.TypeOf((*MockGenAssetGateway)(nil).Push), ctx, tx, to, amount)
}

// MockGenRateModel is a mock of RateModel interface.
type MockGenRateModel struct {
	ctrl     *gomock.Controller
	recorder *MockGenRateModelMockRecorder
	isgomock struct{}
}

// MockGenRateModelMockRecorder is the mock recorder for MockGenRateModel.
type MockGenRateModelMockRecorder struct {
	mock *MockGenRateModel
}

// NewMockGenRateModel creates a new mock instance.
func NewMockGenRateModel(ctrl *gomock.Controller) *MockGenRateModel {
	mock := &MockGenRateModel{ctrl: ctrl}
	mock.recorder = &MockGenRateModelMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGenRateModel) EXPECT() *MockGenRateModelMockRecorder {
	return m.recorder
}

// NotifyUtilization mocks base method.
func (m *MockGenRateModel) NotifyUtilization(ctx context.Context, utilization *big.Int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "NotifyUtilization", ctx, utilization)
	ret0, _ := ret[0].(error)
	return ret0
}

// NotifyUtilization indicates an expected call of NotifyUtilization.
func (mr *MockGenRateModelMockRecorder) NotifyUtilization(ctx, utilization any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NotifyUtilization", reflect.TypeOf((*MockGenRateModel)(nil).NotifyUtilization), ctx, utilization)
}

// RatePerSecond mocks base method.
func (m *MockGenRateModel) RatePerSecond(ctx context.Context, utilization *big.Int) *big.Int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RatePerSecond", ctx, utilization)
	ret0, _ := ret[0].(*big.Int)
	return ret0
}

// RatePerSecond indicates an expected call of RatePerSecond.
func (mr *MockGenRateModelMockRecorder) RatePerSecond(ctx, utilization any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RatePerSecond", reflect.TypeOf((*MockGenRateModel)(nil).RatePerSecond), ctx, utilization)
}

// MockGenRetrier is a mock of Retrier interface.
type MockGenRetrier struct {
	ctrl     *gomock.Controller
	recorder *MockGenRetrierMockRecorder
	isgomock struct{}
}

// MockGenRetrierMockRecorder is the mock recorder for MockGenRetrier.
type MockGenRetrierMockRecorder struct {
	mock *MockGenRetrier
}

// NewMockGenRetrier creates a new mock instance.
func NewMockGenRetrier(ctrl *gomock.Controller) *MockGenRetrier {
	mock := &MockGenRetrier{ctrl: ctrl}
	mock.recorder = &MockGenRetrierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGenRetrier) EXPECT() *MockGenRetrierMockRecorder {
	return m.recorder
}

// Retry mocks base method.
func (m *MockGenRetrier) Retry(ctx context.Context, operation func() error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Retry", ctx, operation)
	ret0, _ := ret[0].(error)
	return ret0
}

// Retry indicates an expected call of Retry.
func (mr *MockGenRetrierMockRecorder) Retry(ctx, operation any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Retry", reflect.TypeOf((*MockGenRetrier)(nil).Retry), ctx, operation)
}

// MockGenClock is a mock of Clock interface.
type MockGenClock struct {
	ctrl     *gomock.Controller
	recorder *MockGenClockMockRecorder
	isgomock struct{}
}

// MockGenClockMockRecorder is the mock recorder for MockGenClock.
type MockGenClockMockRecorder struct {
	mock *MockGenClock
}

// NewMockGenClock creates a new mock instance.
func NewMockGenClock(ctrl *gomock.Controller) *MockGenClock {
	mock := &MockGenClock{ctrl: ctrl}
	mock.recorder = &MockGenClockMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGenClock) EXPECT() *MockGenClockMockRecorder {
	return m.recorder
}

// Now mocks base method.
func (m *MockGenClock) Now() time.Time {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Now")
	ret0, _ := ret[0].(time.Time)
	return ret0
}

// Now indicates an expected call of Now.
func (mr *MockGenClockMockRecorder) Now() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Now", reflect.TypeOf((*MockGenClock)(nil).Now))
}
