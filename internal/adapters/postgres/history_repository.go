package postgres

import (
	"context"
	"fmt"
	"fxconvert/internal/domain"
	"fxconvert/internal/history"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// historyLockKey serializes writers so the trim always sees every committed insert.
const historyLockKey = 7310001

// HistoryRepository persists recent conversions. Rows beyond capacity are removed
// in the same transaction as the insert, so the table never holds more than capacity rows.
type HistoryRepository struct {
	pool     *pgxpool.Pool
	capacity int
}

func (r *HistoryRepository) Record(ctx context.Context, entry domain.HistoryEntry) error {
	const insertQ = `
		insert into conversion_history
			(id, source_amount, source_currency, target_currency, converted_amount, rate, rate_source, created_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	// keep only the newest "capacity" rows
	const trimQ = `
		delete from conversion_history
		where seq not in (
			select seq from conversion_history order by seq desc limit $1
		);
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `select pg_advisory_xact_lock($1)`, historyLockKey); err != nil {
		return fmt.Errorf("failed to lock history: %w", err)
	}

	c := entry.Conversion
	if _, err = tx.Exec(ctx, insertQ,
		entry.ID,
		c.SourceAmount,
		c.SourceCurrency.String(),
		c.TargetCurrency.String(),
		c.ConvertedAmount,
		c.Rate,
		string(c.RateSource),
		entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert history entry %s: %w", entry.ID, err)
	}

	if _, err = tx.Exec(ctx, trimQ, r.capacity); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *HistoryRepository) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	const q = `
		select id, source_amount, source_currency, target_currency, converted_amount, rate, rate_source, created_at
		from conversion_history
		order by seq desc
		limit $1;
	`

	rows, err := r.pool.Query(ctx, q, r.capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0, r.capacity)
	for rows.Next() {
		var (
			e              domain.HistoryEntry
			source, target string
			rateSource     string
		)
		if err = rows.Scan(
			&e.ID,
			&e.Conversion.SourceAmount,
			&source,
			&target,
			&e.Conversion.ConvertedAmount,
			&e.Conversion.Rate,
			&rateSource,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Conversion.SourceCurrency = domain.CurrencyCode(source)
		e.Conversion.TargetCurrency = domain.CurrencyCode(target)
		e.Conversion.RateSource = domain.RateSource(rateSource)
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}

func (r *HistoryRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `delete from conversion_history;`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func NewHistoryRepository(pool *pgxpool.Pool, capacity int) *HistoryRepository {
	if capacity <= 0 {
		capacity = history.DefaultCapacity
	}
	return &HistoryRepository{pool: pool, capacity: capacity}
}
