package models

import "time"

// TradeRow is one instrument line of a bulletin's data region after projection
// onto the six columns of interest.
//
// String fields keep the cell text exactly as read; numeric fields are already
// coerced to integers.
type TradeRow struct {
	ExchangeProductID   string // Код Инструмента
	ExchangeProductName string // Наименование Инструмента
	DeliveryBasisName   string // Базис поставки
	Volume              int64  // Объем Договоров в единицах измерения
	Total               int64  // Обьем Договоров, руб.
	Count               int64  // Количество Договоров, шт.
}

// TradingRecord is a TradeRow enriched with the identifiers derived from the
// exchange product id and the bulletin date. It maps 1:1 onto a row of
// spimex_trading_results.
//
// ID, CreatedOn and UpdatedOn are assigned by the database and are only
// populated on records read back from storage.
type TradingRecord struct {
	ID                  int64     `json:"id,omitempty"`
	ExchangeProductID   string    `json:"exchange_product_id" example:"A592ANK060F"`
	ExchangeProductName string    `json:"exchange_product_name" example:"Бензин (АИ-92-К5)"`
	OilID               string    `json:"oil_id" example:"A592"`
	DeliveryBasisID     string    `json:"delivery_basis_id" example:"ANK"`
	DeliveryBasisName   string    `json:"delivery_basis_name" example:"Ангарск-группа станций"`
	DeliveryTypeID      string    `json:"delivery_type_id" example:"F"`
	Volume              int64     `json:"volume" example:"60"`
	Total               int64     `json:"total" example:"3480000"`
	Count               int64     `json:"count" example:"1"`
	Date                time.Time `json:"date"`
	CreatedOn           time.Time `json:"created_on,omitempty"`
	UpdatedOn           time.Time `json:"updated_on,omitempty"`
}

// ResultsFilter narrows a trading results query. Zero values mean "any".
type ResultsFilter struct {
	Date            *time.Time
	OilID           string
	DeliveryBasisID string
	DeliveryTypeID  string
	Limit           int
}
