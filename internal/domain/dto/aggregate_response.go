package dto

// AggregateResponse represents the JSON structure returned by the
// GET /api/v1/aggregate endpoint.
type AggregateResponse struct {
	OilID          string `json:"oil_id" example:"A592"`
	StartDate      string `json:"start_date,omitempty" example:"2024-03-01"`
	EndDate        string `json:"end_date,omitempty" example:"2024-03-05"`
	TotalVolume    int64  `json:"total_volume" example:"1200"`
	TotalAmount    int64  `json:"total_amount" example:"69600000"`
	TotalContracts int64  `json:"total_contracts" example:"20"`
	MaxDailyVolume int64  `json:"max_daily_volume" example:"540"`
}
