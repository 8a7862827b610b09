package mocks

import (
	"context"

	"github.com/segyhp/loan-amortizer/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Defaults() domain.LoanInputs {
	args := m.Called()
	return args.Get(0).(domain.LoanInputs)
}

func (m *MockScheduleService) Presets() []domain.Preset {
	args := m.Called()
	return args.Get(0).([]domain.Preset)
}

func (m *MockScheduleService) Calculate(ctx context.Context, in domain.LoanInputs) (*domain.ScheduleResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleResult), args.Error(1)
}

func (m *MockScheduleService) CreateQuote(ctx context.Context, label string, in domain.LoanInputs) (*domain.Quote, error) {
	args := m.Called(ctx, label, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockScheduleService) GetQuote(ctx context.Context, quoteID string) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

// NewMockScheduleService creates a new mock schedule service instance
func NewMockScheduleService() *MockScheduleService {
	return &MockScheduleService{}
}
