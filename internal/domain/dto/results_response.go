package dto

import "github.com/guttosm/spimexpulse/internal/domain/models"

// ResultsResponse wraps a page of trading results.
type ResultsResponse struct {
	Count   int                    `json:"count" example:"1"`
	Results []models.TradingRecord `json:"results"`
}

// DatesResponse lists the most recent trading dates present in storage, newest first.
type DatesResponse struct {
	Dates []string `json:"dates" example:"2024-03-05,2024-03-04"`
}
