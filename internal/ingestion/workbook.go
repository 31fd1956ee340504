package ingestion

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	// OLE2 compound document, the container of legacy BIFF .xls workbooks.
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	// Zip local file header, the container of OOXML .xlsx workbooks.
	zipMagic = []byte("PK\x03\x04")
)

// LoadFirstSheet reads the first worksheet of a workbook into a table of strings.
// Missing cells read as "". Rows keep their sheet index, so a blank sheet row
// becomes an empty slice rather than disappearing.
func LoadFirstSheet(data []byte) ([][]string, error) {
	switch {
	case bytes.HasPrefix(data, oleMagic):
		return readXLS(data)
	case bytes.HasPrefix(data, zipMagic):
		return readXLSX(data)
	default:
		return nil, &BulletinFormatError{Reason: "unrecognized workbook format"}
	}
}

func readXLS(data []byte) (table [][]string, err error) {
	// extrame/xls panics on some truncated streams instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			table = nil
			err = &BulletinFormatError{Reason: "corrupt xls workbook", Err: fmt.Errorf("%v", r)}
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, &BulletinFormatError{Reason: "open xls workbook", Err: err}
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, &BulletinFormatError{Reason: "workbook has no sheets"}
	}

	table = make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		table = append(table, xlsCells(xlsRow(sheet, i)))
	}
	return table, nil
}

// xlsMaxCols is the BIFF8 column limit.
const xlsMaxCols = 256

// xlsRow returns row i of sheet, or nil when the file holds no record for it.
// Writers omit records for empty rows and WorkSheet.Row dereferences the
// missing entry, so the lookup is guarded per row.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// xlsCells renders a row as strings. A row built from cell records alone
// reports no last column, so it is scanned up to the format limit and
// trailing blanks are cut.
func xlsCells(row *xls.Row) []string {
	if row == nil {
		return nil
	}
	width := row.LastCol()
	if width > 0 {
		cells := make([]string, width)
		for j := row.FirstCol(); j < width; j++ {
			cells[j] = row.Col(j)
		}
		return cells
	}

	cells := make([]string, xlsMaxCols)
	last := -1
	for j := range cells {
		if cells[j] = row.Col(j); cells[j] != "" {
			last = j
		}
	}
	return cells[:last+1]
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &BulletinFormatError{Reason: "open xlsx workbook", Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &BulletinFormatError{Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &BulletinFormatError{Reason: "read sheet " + sheets[0], Err: err}
	}
	return rows, nil
}
