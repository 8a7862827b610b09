package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/loan-amortizer/internal/amortization"
	"github.com/segyhp/loan-amortizer/internal/config"
	"github.com/segyhp/loan-amortizer/internal/domain"
	"github.com/segyhp/loan-amortizer/internal/repository"
	customError "github.com/segyhp/loan-amortizer/pkg/errors"
	"github.com/segyhp/loan-amortizer/pkg/logger"
	"github.com/segyhp/loan-amortizer/pkg/utils"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ScheduleService struct {
	QuoteRepo repository.QuoteRepository
	cache     repository.ScheduleCache
	config    *config.Config
	now       func() time.Time
	log       zerolog.Logger
}

func NewScheduleService(
	quoteRepo repository.QuoteRepository,
	cache repository.ScheduleCache,
	config *config.Config,
) *ScheduleService {
	return &ScheduleService{
		QuoteRepo: quoteRepo,
		cache:     cache,
		config:    config,
		now:       time.Now,
		log:       logger.WithComponent("schedule_service"),
	}
}

// WithClock replaces the clock "today" is read from.
func (s *ScheduleService) WithClock(now func() time.Time) *ScheduleService {
	s.now = now
	return s
}

// Today returns the current calendar date in the configured time zone.
func (s *ScheduleService) Today() time.Time {
	y, m, d := s.now().In(s.config.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Defaults returns the inputs a fresh (or reset) form starts from.
func (s *ScheduleService) Defaults() domain.LoanInputs {
	return domain.LoanInputs{
		Amount:            s.config.GetDefaultAmount(),
		DownPayment:       s.config.GetDefaultDownPayment(),
		Fees:              s.config.GetDefaultFees(),
		TermMonths:        s.config.Business.DefaultTermMonths,
		AnnualRatePercent: s.config.GetDefaultAPR(),
	}
}

// Presets returns the configured quick-fill loans. Applying one clears the
// down payment and fees.
func (s *ScheduleService) Presets() []domain.Preset {
	presets := make([]domain.Preset, 0, len(s.config.Business.Presets))
	for _, p := range s.config.Business.Presets {
		amount, _ := decimal.NewFromString(p.Amount)
		apr, _ := decimal.NewFromString(p.APR)
		presets = append(presets, domain.Preset{
			Name: p.Name,
			Inputs: domain.LoanInputs{
				Amount:            amount,
				DownPayment:       decimal.Zero,
				Fees:              decimal.Zero,
				TermMonths:        p.TermMonths,
				AnnualRatePercent: apr,
			},
		})
	}
	return presets
}

// Calculate computes the schedule for in, serving repeated inputs from the cache.
func (s *ScheduleService) Calculate(ctx context.Context, in domain.LoanInputs) (*domain.ScheduleResult, error) {
	resolved, err := s.resolve(in)
	if err != nil {
		return nil, err
	}
	return s.calculate(ctx, resolved), nil
}

// CreateQuote computes and stores a schedule under a new quote ID.
func (s *ScheduleService) CreateQuote(ctx context.Context, label string, in domain.LoanInputs) (*domain.Quote, error) {
	resolved, err := s.resolve(in)
	if err != nil {
		return nil, err
	}

	result := s.calculate(ctx, resolved)
	quote := domain.NewQuote(uuid.New(), strings.TrimSpace(label), resolved, result, s.now().UTC())

	if err := s.QuoteRepo.Create(ctx, quote); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if s.cache != nil {
		if err := s.cache.SetQuote(ctx, quote); err != nil {
			s.log.Warn().Err(err).Str("code", customError.CodeOf(err)).Str("quote_id", quote.ID.String()).Msg("failed to cache quote")
		}
	}

	s.log.Info().
		Str("quote_id", quote.ID.String()).
		Str("principal", quote.Principal.String()).
		Int("term_months", quote.TermMonths).
		Msg("quote created")

	return quote, nil
}

// GetQuote loads a saved quote, cache first.
func (s *ScheduleService) GetQuote(ctx context.Context, quoteID string) (*domain.Quote, error) {
	id, err := uuid.Parse(quoteID)
	if err != nil {
		return nil, customError.WrapInvalidQuoteID(quoteID)
	}

	if s.cache != nil {
		quote, err := s.cache.GetQuote(ctx, id)
		if err == nil {
			return quote, nil
		}
		if !errors.Is(err, customError.ErrCacheMiss) {
			s.log.Warn().Err(err).Str("code", customError.CodeOf(err)).Str("quote_id", quoteID).Msg("quote cache read failed")
		}
	}

	quote, err := s.QuoteRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapQuoteNotFound(quoteID)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if s.cache != nil {
		if err := s.cache.SetQuote(ctx, quote); err != nil {
			s.log.Warn().Err(err).Str("code", customError.CodeOf(err)).Str("quote_id", quoteID).Msg("failed to cache quote")
		}
	}

	return quote, nil
}

// PurgeExpiredQuotes deletes quotes older than the configured retention.
func (s *ScheduleService) PurgeExpiredQuotes(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.config.Business.QuoteRetention)

	removed, err := s.QuoteRepo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	s.log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("expired quotes purged")
	return removed, nil
}

// resolve applies the caller-side term cap and pins the start date, so the
// result no longer depends on when it is computed.
func (s *ScheduleService) resolve(in domain.LoanInputs) (domain.LoanInputs, error) {
	if limit := s.config.Business.MaxTermMonths; in.TermMonths > limit {
		return in, customError.WrapTermTooLong(in.TermMonths, limit)
	}
	in.StartDate = amortization.StartDate(in, s.Today())
	return in, nil
}

func (s *ScheduleService) calculate(ctx context.Context, in domain.LoanInputs) *domain.ScheduleResult {
	key := cacheKey(in)

	if s.cache != nil {
		cached, err := s.cache.GetSchedule(ctx, key)
		if err == nil {
			return cached
		}
		if !errors.Is(err, customError.ErrCacheMiss) {
			s.log.Warn().Err(err).Str("code", customError.CodeOf(err)).Str("key", key).Msg("schedule cache read failed")
		}
	}

	result := amortization.Compute(in, in.StartDate)

	if s.cache != nil {
		if err := s.cache.SetSchedule(ctx, key, result); err != nil {
			s.log.Warn().Err(err).Str("code", customError.CodeOf(err)).Str("key", key).Msg("failed to cache schedule")
		}
	}

	s.log.Debug().
		Str("principal", result.Principal.String()).
		Str("monthly_payment", result.MonthlyPayment.String()).
		Int("lines", len(result.Lines)).
		Msg("schedule computed")

	return result
}

// cacheKey is the canonical form of fully resolved inputs.
func cacheKey(in domain.LoanInputs) string {
	return strings.Join([]string{
		in.Amount.String(),
		in.DownPayment.String(),
		in.Fees.String(),
		strconv.Itoa(in.TermMonths),
		in.AnnualRatePercent.String(),
		utils.FormatDate(in.StartDate),
	}, "|")
}
