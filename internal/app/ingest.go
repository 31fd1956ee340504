package app

import (
	"context"

	"github.com/guttosm/spimexpulse/config"
	"github.com/guttosm/spimexpulse/internal/ingestion"
	"github.com/guttosm/spimexpulse/internal/logger"
	"github.com/guttosm/spimexpulse/internal/spimex"
	"github.com/guttosm/spimexpulse/internal/storage"
)

// RunIngestion opens the persistence sink, crawls the exchange and lands every
// bulletin dated on or after the configured cutoff. The sink, and with it the
// database handle, is closed on every return path.
func RunIngestion(ctx context.Context, cfg config.Config) (ingestion.Summary, error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return ingestion.Summary{}, err
	}
	sink := storage.NewSink(db)
	defer func() {
		if err := sink.Close(); err != nil {
			l := logger.Component("ingestion")
			l.Warn().Err(err).Msg("closing sink")
		}
	}()

	client := spimex.NewClient(cfg.Exchange.BaseURL, cfg.Exchange.HTTPTimeout)
	return ingestion.Run(ctx, client, sink, ingestion.Options{
		Cutoff:        cfg.Ingest.Cutoff,
		SkipMalformed: cfg.Ingest.SkipMalformed,
	})
}
