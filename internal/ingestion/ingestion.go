package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guttosm/spimexpulse/internal/domain/models"
	"github.com/guttosm/spimexpulse/internal/logger"
	"github.com/guttosm/spimexpulse/internal/spimex"
)

// Reasons a run ends without error.
const (
	StopCutoff    = "cutoff"
	StopLastPage  = "last_page"
	StopEmptyPage = "empty_page"
)

// Source is the exchange as seen by the pipeline.
type Source interface {
	ListPage(ctx context.Context, page int) (models.ListingPage, error)
	Fetch(ctx context.Context, url string) ([]byte, error)
	BaseURL() string
}

// Sink receives assembled records. Flush commits everything appended since the
// previous flush atomically; Discard drops it.
type Sink interface {
	Append(rec models.TradingRecord)
	Flush(ctx context.Context) error
	Discard()
}

// Options tune a pipeline run.
type Options struct {
	// Cutoff stops the run at the first bulletin dated strictly before it.
	Cutoff time.Time
	// SkipMalformed logs and skips bulletins failing with *BulletinFormatError.
	SkipMalformed bool
}

// Summary describes what a run did.
type Summary struct {
	RunID      string
	Pages      int
	Bulletins  int // committed
	Skipped    int // malformed, skipped under SkipMalformed
	Rows       int // records committed
	Rejected   int // rows rejected by the assembler
	StopReason string
}

// Run walks the bulletin index page by page, newest first, and lands every
// bulletin dated on or after opts.Cutoff into sink, one commit per bulletin.
//
// Behavior:
//   - Stops cleanly on a page without links, on the last page, or at the first
//     link older than the cutoff (that bulletin is not downloaded).
//   - Any fetch, layout (unless SkipMalformed) or persistence error aborts the
//     run; the bulletin in flight is not committed.
//   - ctx is checked between pages and between bulletins only.
func Run(ctx context.Context, src Source, sink Sink, opts Options) (Summary, error) {
	sum := Summary{RunID: uuid.NewString()}
	log := logger.Component("ingestion").With().Str("run_id", sum.RunID).Logger()
	start := time.Now()
	log.Info().Time("cutoff", opts.Cutoff).Str("base_url", src.BaseURL()).Msg("ingestion start")

	err := walk(ctx, src, sink, opts, &sum, log)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Int("pages", sum.Pages).
		Int("bulletins", sum.Bulletins).
		Int("skipped", sum.Skipped).
		Int("rows", sum.Rows).
		Int("rejected", sum.Rejected).
		Str("stop_reason", sum.StopReason).
		Dur("elapsed", time.Since(start)).
		Msg("ingestion finished")
	return sum, err
}

func walk(ctx context.Context, src Source, sink Sink, opts Options, sum *Summary, log zerolog.Logger) error {
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		listing, err := src.ListPage(ctx, page)
		if err != nil {
			return fmt.Errorf("list page %d: %w", page, err)
		}
		sum.Pages++
		log.Info().Int("page", page).Int("links", len(listing.Links)).Bool("has_next", listing.HasNext).Msg("page listed")

		if len(listing.Links) == 0 {
			sum.StopReason = StopEmptyPage
			return nil
		}

		for _, link := range listing.Links {
			if link.Date.Before(opts.Cutoff) {
				log.Info().Str("href", link.Href).Time("date", link.Date).Msg("cutoff reached")
				sum.StopReason = StopCutoff
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := ingestBulletin(ctx, src, sink, link, opts, sum, log); err != nil {
				return err
			}
		}

		if !listing.HasNext {
			sum.StopReason = StopLastPage
			return nil
		}
	}
}

// ingestBulletin downloads, parses and commits a single bulletin.
func ingestBulletin(ctx context.Context, src Source, sink Sink, link models.BulletinLink, opts Options, sum *Summary, log zerolog.Logger) error {
	start := time.Now()
	url := spimex.Absolutize(src.BaseURL(), link.Href)
	day := link.Date.Format("2006-01-02")

	data, err := src.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("bulletin %s: %w", day, err)
	}

	rows, err := ParseBulletin(data)
	if err != nil {
		var bfe *BulletinFormatError
		if opts.SkipMalformed && errors.As(err, &bfe) {
			sum.Skipped++
			log.Warn().Err(err).Str("url", url).Str("date", day).Msg("malformed bulletin skipped")
			return nil
		}
		return fmt.Errorf("bulletin %s (%s): %w", day, url, err)
	}

	appended := 0
	for _, row := range rows {
		rec, err := AssembleRecord(row, link.Date)
		if err != nil {
			sum.Rejected++
			log.Warn().Err(err).Str("date", day).Msg("row rejected")
			continue
		}
		sink.Append(rec)
		appended++
	}

	if err := sink.Flush(ctx); err != nil {
		sink.Discard()
		return fmt.Errorf("bulletin %s: %w", day, err)
	}
	sum.Bulletins++
	sum.Rows += appended

	log.Info().
		Str("url", url).
		Str("date", day).
		Int("bytes", len(data)).
		Str("checksum", checksum(data)).
		Int("rows", appended).
		Dur("elapsed", time.Since(start)).
		Msg("bulletin ingested")
	return nil
}

// checksum fingerprints a bulletin file for log correlation.
func checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
