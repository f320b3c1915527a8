package csvproc

import (
	"sort"
	"strings"
)

// Format identifies a recognized CSV header layout.
type Format string

const (
	FormatCRS     Format = "crs"
	FormatManual  Format = "manual"
	FormatUnknown Format = "unknown"
)

var (
	crsColumns    = []string{"Owner 1", "Owner Address", "Owner City", "Owner State", "Owner Zip"}
	manualColumns = []string{"Name", "Address", "City", "State", "Zip"}
)

// DetectFormat inspects trimmed header names and returns the matching
// layout. Headers beyond the required set are ignored. When neither
// layout matches it returns FormatUnknown and a *FormatError listing
// what is missing.
func DetectFormat(headers []string) (Format, error) {
	columns := make(map[string]bool, len(headers))
	cleaned := make([]string, 0, len(headers))
	for _, h := range headers {
		h = strings.TrimSpace(h)
		columns[h] = true
		cleaned = append(cleaned, h)
	}

	if hasAll(columns, crsColumns) {
		return FormatCRS, nil
	}
	if hasAll(columns, manualColumns) {
		return FormatManual, nil
	}

	sort.Strings(cleaned)
	return FormatUnknown, &FormatError{
		Columns:       cleaned,
		MissingCRS:    missing(columns, crsColumns),
		MissingManual: missing(columns, manualColumns),
	}
}

func hasAll(columns map[string]bool, required []string) bool {
	for _, c := range required {
		if !columns[c] {
			return false
		}
	}
	return true
}

func missing(columns map[string]bool, required []string) []string {
	var out []string
	for _, c := range required {
		if !columns[c] {
			out = append(out, c)
		}
	}
	return out
}

// headerIndex maps the required column names of a format to their
// positions in the header row.
func headerIndex(format Format, headers []string) map[string]int {
	required := manualColumns
	if format == FormatCRS {
		required = crsColumns
	}

	idx := make(map[string]int, len(required))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		for _, c := range required {
			if h == c {
				idx[c] = i
			}
		}
	}
	return idx
}
