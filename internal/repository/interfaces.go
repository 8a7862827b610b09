package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/loan-amortizer/internal/domain"
)

// QuoteRepository defines the interface for saved quote operations
type QuoteRepository interface {
	// Create stores a quote together with its schedule lines
	Create(ctx context.Context, quote *domain.Quote) error

	// GetByID retrieves a quote and its lines; sql.ErrNoRows when it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error)

	// DeleteCreatedBefore removes quotes created before cutoff and returns how many were removed
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Ping checks connectivity
	Ping(ctx context.Context) error
}

// ScheduleCache memoizes schedule results and saved quotes
type ScheduleCache interface {
	// GetSchedule returns errors.ErrCacheMiss when key is absent
	GetSchedule(ctx context.Context, key string) (*domain.ScheduleResult, error)
	SetSchedule(ctx context.Context, key string, result *domain.ScheduleResult) error

	// GetQuote returns errors.ErrCacheMiss when the quote is absent
	GetQuote(ctx context.Context, id uuid.UUID) (*domain.Quote, error)
	SetQuote(ctx context.Context, quote *domain.Quote) error

	// Ping checks connectivity
	Ping(ctx context.Context) error
}
