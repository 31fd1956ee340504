package models

// Aggregate summarizes the trading results of one oil grade over a date range.
//
// Fields:
//   - OilID: the grade code (first four characters of the exchange product id).
//   - TotalVolume, TotalAmount, TotalContracts: sums over the range.
//   - MaxDailyVolume: the largest single-day volume within the range.
//
// swagger:model Aggregate
type Aggregate struct {
	OilID          string `json:"oil_id" example:"A592"`
	TotalVolume    int64  `json:"total_volume" example:"1200"`
	TotalAmount    int64  `json:"total_amount" example:"69600000"`
	TotalContracts int64  `json:"total_contracts" example:"20"`
	MaxDailyVolume int64  `json:"max_daily_volume" example:"540"`
}
