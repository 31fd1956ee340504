package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/guttosm/spimexpulse/internal/domain/models"
	"github.com/guttosm/spimexpulse/internal/logger"
)

// PersistenceError reports a batch that could not be committed.
// The whole batch was rolled back.
type PersistenceError struct {
	Rows int
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %d rows: %v", e.Rows, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Sink buffers trading records and writes them as one transaction per Flush.
// It is not safe for concurrent use.
type Sink struct {
	repo    TradingResultsRepository
	db      *sql.DB
	pending []models.TradingRecord
	log     zerolog.Logger
}

// NewSink builds a Sink over db. Close releases db.
func NewSink(db *sql.DB) *Sink {
	return newSinkWithRepo(NewTradingResultsRepository(db), db)
}

func newSinkWithRepo(repo TradingResultsRepository, db *sql.DB) *Sink {
	return &Sink{repo: repo, db: db, log: logger.Component("sink")}
}

// Append buffers rec for the next Flush.
func (s *Sink) Append(rec models.TradingRecord) {
	s.pending = append(s.pending, rec)
}

// Pending reports how many records wait for the next Flush.
func (s *Sink) Pending() int { return len(s.pending) }

// Flush commits every buffered record atomically. On failure the buffer is
// kept so the caller can decide between retrying and Discard.
func (s *Sink) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	if err := s.repo.InsertResultsBatch(ctx, s.pending); err != nil {
		return &PersistenceError{Rows: len(s.pending), Err: err}
	}
	s.log.Debug().Int("rows", len(s.pending)).Msg("batch committed")
	s.pending = s.pending[:0]
	return nil
}

// Discard drops buffered records without writing them.
func (s *Sink) Discard() {
	if n := len(s.pending); n > 0 {
		s.log.Warn().Int("rows", n).Msg("batch discarded")
	}
	s.pending = nil
}

// Close discards anything unflushed and closes the database handle.
func (s *Sink) Close() error {
	s.Discard()
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
