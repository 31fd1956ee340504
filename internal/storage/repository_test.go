package storage

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/spimexpulse/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*tradingResultsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &tradingResultsRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func sampleRecord(id string, count int64) models.TradingRecord {
	return models.TradingRecord{
		ExchangeProductID:   id,
		ExchangeProductName: "Бензин (АИ-92-К5)",
		OilID:               id[:4],
		DeliveryBasisID:     id[4:7],
		DeliveryBasisName:   "Ангарск-группа станций",
		DeliveryTypeID:      id[len(id)-1:],
		Volume:              60,
		Total:               3480000,
		Count:               count,
		Date:                time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
	}
}

func TestGetAggregateByOil_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	// Focus on the final SELECT shape rather than exact whitespace.
	selectRegex := regexp.MustCompile(`WITH filtered AS .* AS max_daily_volume`)

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		args     []driver.Value
		row      []driver.Value
		wantNil  bool
		wantDays int64
	}{
		{name: "no dates", args: []driver.Value{"A592"}, row: []driver.Value{int64(190), int64(12380000), int64(3), int64(130)}, wantDays: 130},
		{name: "with start", start: &day, args: []driver.Value{"A592", "2024-03-04"}, row: []driver.Value{int64(60), int64(10), int64(1), int64(60)}, wantDays: 60},
		{name: "with range", start: &day, end: &day2, args: []driver.Value{"A592", "2024-03-04", "2024-03-05"}, row: []driver.Value{int64(60), int64(10), int64(1), int64(60)}, wantDays: 60},
		{name: "no data (NULLs)", start: &day, end: &day2, args: []driver.Value{"A592", "2024-03-04", "2024-03-05"}, row: []driver.Value{nil, nil, nil, nil}, wantNil: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := sqlmock.NewRows([]string{"total_volume", "total_amount", "total_contracts", "max_daily_volume"}).AddRow(tc.row...)
			mock.ExpectQuery(selectRegex.String()).WithArgs(tc.args...).WillReturnRows(rows)

			out, err := repo.GetAggregateByOil(context.Background(), "A592", tc.start, tc.end)
			if tc.wantNil {
				if err != nil || out != nil {
					t.Fatalf("want nil,nil got out=%+v err=%v", out, err)
				}
			} else {
				if err != nil || out == nil {
					t.Fatalf("unexpected out=%+v err=%v", out, err)
				}
				if out.OilID != "A592" || out.MaxDailyVolume != tc.wantDays {
					t.Fatalf("unexpected aggregate %+v", out)
				}
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestListResults_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	cols := []string{
		"id", "exchange_product_id", "exchange_product_name", "oil_id",
		"delivery_basis_id", "delivery_basis_name", "delivery_type_id",
		"volume", "total", "count", "date", "created_on", "updated_on",
	}
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	t.Run("filters and limit", func(t *testing.T) {
		mock.ExpectQuery(`FROM spimex_trading_results\s+WHERE oil_id = \$1 AND delivery_type_id = \$2\s+ORDER BY date DESC, id\s+LIMIT \$3`).
			WithArgs("A592", "F", 10).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(1), "A592ANK060F", "Бензин", "A592", "ANK", "Ангарск", "F", int64(60), int64(3480000), int64(1), day, now, now))

		out, err := repo.ListResults(context.Background(), models.ResultsFilter{OilID: "A592", DeliveryTypeID: "F", Limit: 10})
		if err != nil {
			t.Fatalf("ListResults: %v", err)
		}
		if len(out) != 1 || out[0].ID != 1 || out[0].DeliveryBasisID != "ANK" || !out[0].Date.Equal(day) {
			t.Fatalf("unexpected rows %+v", out)
		}
	})

	t.Run("date only, default limit", func(t *testing.T) {
		mock.ExpectQuery(`WHERE date = \$1\s+ORDER BY date DESC, id\s+LIMIT \$2`).
			WithArgs("2024-03-05", DefaultResultsLimit).
			WillReturnRows(sqlmock.NewRows(cols))

		out, err := repo.ListResults(context.Background(), models.ResultsFilter{Date: &day})
		if err != nil {
			t.Fatalf("ListResults: %v", err)
		}
		if out == nil || len(out) != 0 {
			t.Fatalf("want empty non-nil slice, got %#v", out)
		}
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery(`LIMIT \$1`).WithArgs(DefaultResultsLimit).WillReturnError(dummyErr{})
		if _, err := repo.ListResults(context.Background(), models.ResultsFilter{}); err == nil {
			t.Fatalf("expected error")
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLastTradingDates_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	d1 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT date FROM spimex_trading_results ORDER BY date DESC LIMIT $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"date"}).AddRow(d1).AddRow(d2))

	out, err := repo.LastTradingDates(context.Background(), 2)
	if err != nil {
		t.Fatalf("LastTradingDates: %v", err)
	}
	if len(out) != 2 || !out[0].Equal(d1) || !out[1].Equal(d2) {
		t.Fatalf("unexpected dates %v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNewTradingResultsRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewTradingResultsRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

func TestInsertResultsBatch_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	// pq.CopyIn is driver specific; sqlmock sees it as a prepared statement
	// executed once per row and once more to end the COPY.
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().
		WithArgs("A592ANK060F", "Бензин (АИ-92-К5)", "A592", "ANK", "Ангарск-группа станций", "F", int64(60), int64(3480000), int64(1), "2024-03-05").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	recs := []models.TradingRecord{sampleRecord("A592ANK060F", 1), sampleRecord("DSC5ANK065F", 2)}
	if err := repo.InsertResultsBatch(context.Background(), recs); err != nil {
		t.Fatalf("InsertResultsBatch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertResultsBatch_ErrorOnBegin(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin().WillReturnError(dummyErr{})
	if err := repo.InsertResultsBatch(context.Background(), []models.TradingRecord{{}}); err == nil {
		t.Fatalf("expected error on begin")
	}
}

func TestInsertResultsBatch_ErrorOnPrepare(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(".*").WillReturnError(dummyErr{})
	mock.ExpectRollback()

	if err := repo.InsertResultsBatch(context.Background(), []models.TradingRecord{sampleRecord("A592ANK060F", 1)}); err == nil {
		t.Fatalf("expected error on prepare")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertResultsBatch_ErrorOnRowExec(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnError(dummyErr{})
	mock.ExpectRollback()

	if err := repo.InsertResultsBatch(context.Background(), []models.TradingRecord{sampleRecord("A592ANK060F", 1)}); err == nil {
		t.Fatalf("expected error on row exec")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertResultsBatch_ErrorOnFinalExec(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnError(dummyErr{})
	mock.ExpectRollback()

	if err := repo.InsertResultsBatch(context.Background(), []models.TradingRecord{sampleRecord("A592ANK060F", 1)}); err == nil {
		t.Fatalf("expected error on final exec")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
