package ingestion

import (
	"fmt"
	"time"

	"github.com/guttosm/spimexpulse/internal/domain/models"
)

// minProductIDLen is the shortest exchange product id that still encodes
// grade (4), basis (3) and delivery type (last character).
const minProductIDLen = 8

// AssembleRecord turns a parsed row into a persistable record for the bulletin
// dated date. The derived ids are fixed-offset slices of the product id:
//
//	A592ANK060F → oil A592, basis ANK, delivery type F
//
// It is pure and returns an error wrapping ErrShortProductID when the id is too short.
func AssembleRecord(row models.TradeRow, date time.Time) (models.TradingRecord, error) {
	id := []rune(row.ExchangeProductID)
	if len(id) < minProductIDLen {
		return models.TradingRecord{}, fmt.Errorf("%w: %q", ErrShortProductID, row.ExchangeProductID)
	}

	return models.TradingRecord{
		ExchangeProductID:   row.ExchangeProductID,
		ExchangeProductName: row.ExchangeProductName,
		OilID:               string(id[0:4]),
		DeliveryBasisID:     string(id[4:7]),
		DeliveryBasisName:   row.DeliveryBasisName,
		DeliveryTypeID:      string(id[len(id)-1]),
		Volume:              row.Volume,
		Total:               row.Total,
		Count:               row.Count,
		Date:                date,
	}, nil
}
