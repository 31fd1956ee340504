package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/spimexpulse/internal/domain/models"
	pq "github.com/lib/pq"
)

const resultsTable = "spimex_trading_results"

// DefaultResultsLimit caps ListResults when the filter carries no limit.
const DefaultResultsLimit = 100

// TradingResultsRepository defines contract for DB operations.
type TradingResultsRepository interface {
	InsertResultsBatch(ctx context.Context, records []models.TradingRecord) error
	GetAggregateByOil(ctx context.Context, oilID string, startDate, endDate *time.Time) (*models.Aggregate, error)
	ListResults(ctx context.Context, filter models.ResultsFilter) ([]models.TradingRecord, error)
	LastTradingDates(ctx context.Context, limit int) ([]time.Time, error)
}

type tradingResultsRepository struct {
	db *sql.DB
}

func NewTradingResultsRepository(db *sql.DB) TradingResultsRepository {
	return &tradingResultsRepository{db: db}
}

// InsertResultsBatch inserts all records in a single transaction using COPY.
// Either every record lands or none does.
func (r *tradingResultsRepository) InsertResultsBatch(ctx context.Context, records []models.TradingRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		resultsTable,
		"exchange_product_id",
		"exchange_product_name",
		"oil_id",
		"delivery_basis_id",
		"delivery_basis_name",
		"delivery_type_id",
		"volume",
		"total",
		"count",
		"date",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.ExchangeProductID,
			rec.ExchangeProductName,
			rec.OilID,
			rec.DeliveryBasisID,
			rec.DeliveryBasisName,
			rec.DeliveryTypeID,
			rec.Volume,
			rec.Total,
			rec.Count,
			dateOnly(rec.Date),
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GetAggregateByOil sums volume, amount and contracts for an oil grade and
// reports the largest single-day volume. It returns nil, nil when nothing matches.
func (r *tradingResultsRepository) GetAggregateByOil(ctx context.Context, oilID string, startDate, endDate *time.Time) (*models.Aggregate, error) {
	// $1 is always oil_id. Subsequent placeholders depend on provided dates.
	conditions := "oil_id = $1"
	args := []interface{}{oilID}
	if startDate != nil {
		args = append(args, dateOnly(*startDate))
		conditions += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if endDate != nil {
		args = append(args, dateOnly(*endDate))
		conditions += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	query := fmt.Sprintf(`
		WITH filtered AS (
			SELECT date, volume, total, count
			FROM %s
			WHERE %s
		), daily AS (
			SELECT date, SUM(volume) AS daily_volume
			FROM filtered
			GROUP BY date
		)
		SELECT
			(SELECT SUM(volume) FROM filtered)::BIGINT AS total_volume,
			(SELECT SUM(total) FROM filtered)::BIGINT AS total_amount,
			(SELECT SUM(count) FROM filtered)::BIGINT AS total_contracts,
			(SELECT MAX(daily_volume) FROM daily)::BIGINT AS max_daily_volume
	`, resultsTable, conditions)

	var volume, amount, contracts, maxDaily sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&volume, &amount, &contracts, &maxDaily); err != nil {
		return nil, err
	}

	// SUM over no rows is NULL.
	if !volume.Valid && !contracts.Valid {
		return nil, nil
	}

	return &models.Aggregate{
		OilID:          oilID,
		TotalVolume:    volume.Int64,
		TotalAmount:    amount.Int64,
		TotalContracts: contracts.Int64,
		MaxDailyVolume: maxDaily.Int64,
	}, nil
}

// ListResults returns stored records matching filter, newest date first.
func (r *tradingResultsRepository) ListResults(ctx context.Context, filter models.ResultsFilter) ([]models.TradingRecord, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(expr string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}
	if filter.Date != nil {
		add("date = $%d", dateOnly(*filter.Date))
	}
	if filter.OilID != "" {
		add("oil_id = $%d", filter.OilID)
	}
	if filter.DeliveryBasisID != "" {
		add("delivery_basis_id = $%d", filter.DeliveryBasisID)
	}
	if filter.DeliveryTypeID != "" {
		add("delivery_type_id = $%d", filter.DeliveryTypeID)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultResultsLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, exchange_product_id, exchange_product_name, oil_id,
		       delivery_basis_id, delivery_basis_name, delivery_type_id,
		       volume, total, count, date, created_on, updated_on
		FROM %s
		%s
		ORDER BY date DESC, id
		LIMIT $%d
	`, resultsTable, where, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.TradingRecord, 0)
	for rows.Next() {
		var rec models.TradingRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.ExchangeProductID,
			&rec.ExchangeProductName,
			&rec.OilID,
			&rec.DeliveryBasisID,
			&rec.DeliveryBasisName,
			&rec.DeliveryTypeID,
			&rec.Volume,
			&rec.Total,
			&rec.Count,
			&rec.Date,
			&rec.CreatedOn,
			&rec.UpdatedOn,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LastTradingDates returns up to limit distinct trading dates, newest first.
func (r *tradingResultsRepository) LastTradingDates(ctx context.Context, limit int) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT date FROM `+resultsTable+` ORDER BY date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// dateOnly drops the clock so DATE columns never see a timezone shift.
func dateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}
