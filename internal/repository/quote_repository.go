package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/loan-amortizer/internal/domain"

	"github.com/jmoiron/sqlx"
)

type quoteRepository struct {
	db *sqlx.DB
}

func NewQuoteRepository(db *sqlx.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	quoteQuery := `
		INSERT INTO quotes (id, label, amount, down_payment, fees, term_months, annual_rate_percent, start_date,
			principal, monthly_payment, final_payment, total_paid, total_interest, payoff_date, created_at)
		VALUES (:id, :label, :amount, :down_payment, :fees, :term_months, :annual_rate_percent, :start_date,
			:principal, :monthly_payment, :final_payment, :total_paid, :total_interest, :payoff_date, :created_at)
	`
	lineQuery := `
		INSERT INTO quote_lines (quote_id, line_index, payment, interest, principal_paid, ending_balance, due_date)
		VALUES (:quote_id, :line_index, :payment, :interest, :principal_paid, :ending_balance, :due_date)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.NamedExecContext(ctx, quoteQuery, quote); err != nil {
		return err
	}

	// batch insert; postgres caps bind parameters at 65535 so chunk the lines
	const chunk = 1000
	for start := 0; start < len(quote.Lines); start += chunk {
		end := min(start+chunk, len(quote.Lines))
		if _, err = tx.NamedExecContext(ctx, lineQuery, quote.Lines[start:end]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	quoteQuery := `
		SELECT id, label, amount, down_payment, fees, term_months, annual_rate_percent, start_date,
			principal, monthly_payment, final_payment, total_paid, total_interest, payoff_date, created_at
		FROM quotes
		WHERE id = $1
	`
	lineQuery := `
		SELECT quote_id, line_index, payment, interest, principal_paid, ending_balance, due_date
		FROM quote_lines
		WHERE quote_id = $1
		ORDER BY line_index
	`

	var quote domain.Quote
	if err := r.db.GetContext(ctx, &quote, quoteQuery, id); err != nil {
		return nil, err
	}

	var lines []*domain.QuoteLine
	if err := r.db.SelectContext(ctx, &lines, lineQuery, id); err != nil {
		return nil, err
	}
	quote.Lines = lines
	if quote.Lines == nil {
		quote.Lines = []*domain.QuoteLine{}
	}

	return &quote, nil
}

func (r *quoteRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	// quote_lines go with ON DELETE CASCADE
	query := `DELETE FROM quotes WHERE created_at < $1`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *quoteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
