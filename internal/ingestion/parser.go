package ingestion

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/guttosm/spimexpulse/internal/domain/models"
	"github.com/guttosm/spimexpulse/internal/logger"
)

// unitAnchor marks the row right above the header of the metric-ton section.
const unitAnchor = "Единица измерения: Метрическая тонна"

// Header labels as printed in the bulletin, embedded newlines included.
// "Обьем" in the total column is the exchange's own spelling.
const (
	colProductID   = "Код\nИнструмента"
	colProductName = "Наименование\nИнструмента"
	colBasisName   = "Базис\nпоставки"
	colVolume      = "Объем\nДоговоров\nв единицах\nизмерения"
	colTotal       = "Обьем\nДоговоров,\nруб."
	colCount       = "Количество\nДоговоров,\nшт."
)

// trailerMarkers end the data region when found anywhere in a row.
var trailerMarkers = []string{"Итого:", "Итого по секции:", "Маклер АО Петербургская Биржа"}

var errBlankCell = errors.New("blank cell")

// columns holds the sheet index of each extracted column.
type columns struct {
	productID, productName, basisName, volume, total, count int
}

// ParseBulletin loads the first sheet of a bulletin workbook and returns its
// trade rows in sheet order.
func ParseBulletin(data []byte) ([]models.TradeRow, error) {
	table, err := LoadFirstSheet(data)
	if err != nil {
		return nil, err
	}
	return ParseTable(table)
}

// ParseTable extracts trade rows from an in-memory sheet.
//
// Layout:
//   - the first row containing unitAnchor is the anchor A;
//   - row A+1 holds the column labels;
//   - data runs from A+2 up to the first fully blank row or trailer row.
//
// Rows whose six projected cells are all blank, whose count is missing,
// non-numeric or not positive, or whose volume/total cannot be read as
// integers are dropped. Layout problems return *BulletinFormatError.
func ParseTable(table [][]string) ([]models.TradeRow, error) {
	anchor := findAnchor(table)
	if anchor < 0 {
		return nil, &BulletinFormatError{Reason: "unit anchor " + quote(unitAnchor) + " not found"}
	}
	headerIdx := anchor + 1
	if headerIdx >= len(table) {
		return nil, &BulletinFormatError{Reason: "header row missing after unit anchor"}
	}
	cols, err := locateColumns(table[headerIdx])
	if err != nil {
		return nil, err
	}

	log := logger.Component("parser")
	var out []models.TradeRow
	for i := headerIdx + 1; i < len(table); i++ {
		row := table[i]
		if isBlankRow(row) || hasTrailer(row) {
			break
		}

		tr, err := projectRow(i, row, cols)
		if err != nil {
			log.Debug().Err(err).Int("row", i).Msg("row dropped")
			continue
		}
		if tr == nil {
			continue
		}
		out = append(out, *tr)
	}
	return out, nil
}

func findAnchor(table [][]string) int {
	for i, row := range table {
		for _, cell := range row {
			if strings.Contains(cell, unitAnchor) {
				return i
			}
		}
	}
	return -1
}

func locateColumns(header []string) (columns, error) {
	index := func(label string) (int, error) {
		for j, cell := range header {
			if cell == label {
				return j, nil
			}
		}
		return -1, &BulletinFormatError{Reason: "column " + quote(label) + " not found in header"}
	}

	var (
		c   columns
		err error
	)
	for _, f := range []struct {
		dst   *int
		label string
	}{
		{&c.productID, colProductID},
		{&c.productName, colProductName},
		{&c.basisName, colBasisName},
		{&c.volume, colVolume},
		{&c.total, colTotal},
		{&c.count, colCount},
	} {
		if *f.dst, err = index(f.label); err != nil {
			return columns{}, err
		}
	}
	return c, nil
}

// projectRow maps one data row onto a TradeRow. It returns (nil, nil) for a
// row that is blank in every projected column or whose count is not positive,
// and a *RowCoercionError for unreadable numbers.
func projectRow(i int, row []string, c columns) (*models.TradeRow, error) {
	id, name, basis := cell(row, c.productID), cell(row, c.productName), cell(row, c.basisName)
	rawVolume, rawTotal, rawCount := cell(row, c.volume), cell(row, c.total), cell(row, c.count)

	if isBlank(id) && isBlank(name) && isBlank(basis) && isBlank(rawVolume) && isBlank(rawTotal) && isBlank(rawCount) {
		return nil, nil
	}

	count, err := parseInteger(rawCount)
	if err != nil {
		return nil, &RowCoercionError{Row: i, Field: "count", Value: rawCount, Err: err}
	}
	if count <= 0 {
		return nil, nil
	}
	volume, err := parseInteger(rawVolume)
	if err != nil {
		return nil, &RowCoercionError{Row: i, Field: "volume", Value: rawVolume, Err: err}
	}
	total, err := parseInteger(rawTotal)
	if err != nil {
		return nil, &RowCoercionError{Row: i, Field: "total", Value: rawTotal, Err: err}
	}

	return &models.TradeRow{
		ExchangeProductID:   id,
		ExchangeProductName: name,
		DeliveryBasisName:   basis,
		Volume:              volume,
		Total:               total,
		Count:               count,
	}, nil
}

// parseInteger reads a numeric cell. Whitespace (including NBSP thousands
// separators) is ignored and a decimal comma is accepted; the value must be
// integral, so "60.0" and "6E+1" pass while "60.5" does not.
func parseInteger(raw string) (int64, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return 0, errBlankCell
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, errors.New("fractional value")
	}
	return d.IntPart(), nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func isBlankRow(row []string) bool {
	for _, c := range row {
		if !isBlank(c) {
			return false
		}
	}
	return true
}

func hasTrailer(row []string) bool {
	text := strings.Join(row, " ")
	for _, m := range trailerMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, "\n", `\n`) + `"`
}
