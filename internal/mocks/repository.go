package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/loan-amortizer/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockScheduleCache struct {
	mock.Mock
}

func (m *MockScheduleCache) GetSchedule(ctx context.Context, key string) (*domain.ScheduleResult, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleResult), args.Error(1)
}

func (m *MockScheduleCache) SetSchedule(ctx context.Context, key string, result *domain.ScheduleResult) error {
	args := m.Called(ctx, key, result)
	return args.Error(0)
}

func (m *MockScheduleCache) GetQuote(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockScheduleCache) SetQuote(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockScheduleCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
