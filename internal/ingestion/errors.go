package ingestion

import (
	"errors"
	"fmt"
)

// ErrShortProductID marks a row whose exchange product id is too short to carry
// the grade, basis and delivery type codes.
var ErrShortProductID = errors.New("exchange product id shorter than 8 characters")

// BulletinFormatError reports a bulletin whose layout cannot be understood:
// unknown workbook format, missing unit anchor, missing header row or column.
type BulletinFormatError struct {
	Reason string
	Err    error
}

func (e *BulletinFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bulletin format: %s: %v", e.Reason, e.Err)
	}
	return "bulletin format: " + e.Reason
}

func (e *BulletinFormatError) Unwrap() error { return e.Err }

// RowCoercionError reports a numeric cell that could not be read as an integer.
// The parser recovers from it by dropping the row.
type RowCoercionError struct {
	Row   int    // zero-based sheet row
	Field string // canonical field name, e.g. "count"
	Value string
	Err   error
}

func (e *RowCoercionError) Error() string {
	return fmt.Sprintf("row %d: field %s: cannot use %q as integer: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *RowCoercionError) Unwrap() error { return e.Err }
