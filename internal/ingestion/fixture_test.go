package ingestion

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// Column layout of the fixture sheet; mirrors a real bulletin where the
// extracted columns are interleaved with price columns we ignore.
var fixtureHeader = []string{
	"№",
	colProductID,
	colProductName,
	colBasisName,
	colVolume,
	colTotal,
	"Изменение рыночной\nцены к цене\nпредыдущего\nдня",
	"Цена (за единицу\nизмерения), руб.\nМинимальная",
	colCount,
}

func preamble() [][]string {
	return [][]string{
		{"Форма СЭТ-БТ"},
		{"", "Бюллетень по итогам проведения секции", "", "Дата торгов: 05.03.2024"},
		{},
		{"", "Секция Биржи: «Нефтепродукты» АО «Петербургская Биржа»"},
		{"", unitAnchor},
		fixtureHeader,
	}
}

func dataRow(id, name, basis, volume, total, count string) []string {
	return []string{"1", id, name, basis, volume, total, "0", "58000", count}
}

func bulletinTable(data [][]string, trailer ...[]string) [][]string {
	t := preamble()
	t = append(t, data...)
	t = append(t, trailer...)
	return t
}

// buildXLSX renders a table into an in-memory .xlsx workbook.
func buildXLSX(t *testing.T, table [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range table {
		if len(row) == 0 {
			continue
		}
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", ref, &vals); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return buf.Bytes()
}
