package csvproc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyFile is returned when the uploaded file contains no data rows.
var ErrEmptyFile = errors.New("the CSV file is empty")

// ErrNoValidRows is returned when every row was filtered out.
var ErrNoValidRows = errors.New("no valid rows found in CSV file")

// FormatError reports an unrecognized header layout. It carries enough
// detail for the caller to tell the user what columns are missing.
type FormatError struct {
	Columns       []string
	MissingCRS    []string
	MissingManual []string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("CSV format not recognized. Your CSV must have either:\n")
	b.WriteString("1. CRS format with columns: " + strings.Join(crsColumns, ", ") + "\n")
	b.WriteString("2. Manual format with columns: " + strings.Join(manualColumns, ", ") + "\n\n")
	fmt.Fprintf(&b, "Missing columns for CRS format: %v\n", e.MissingCRS)
	fmt.Fprintf(&b, "Missing columns for manual format: %v\n\n", e.MissingManual)
	fmt.Fprintf(&b, "Available columns in your CSV: %v", e.Columns)
	return b.String()
}
