package csvproc

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Record is one normalized mailing address from an uploaded CSV.
// It is never mutated after Process returns it.
type Record struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// Stats summarizes one upload. TotalRows always equals
// ProcessedRows + SkippedRows; cemetery and duplicate rows are part of
// SkippedRows and additionally tracked by their own counters.
type Stats struct {
	TotalRows       int    `json:"total_rows"`
	ProcessedRows   int    `json:"processed_rows"`
	SkippedRows     int    `json:"skipped_rows"`
	FormatDetected  string `json:"format_detected"`
	CemeterySkipped int    `json:"cemetery_records_skipped"`
	DuplicateRows   int    `json:"duplicate_rows"`
}

// maxNameLen is the mail vendor's limit for the recipient name line.
const maxNameLen = 40

// Processor ingests an uploaded neighbor-address CSV: it detects the
// header layout, normalizes rows and removes non-mailable and duplicate
// records. One Processor handles one upload.
type Processor struct {
	log *zap.Logger
}

func NewProcessor(log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{log: log}
}

// Process runs the full ingestion pipeline on raw upload bytes.
// On an unrecognized layout the returned Stats carry
// FormatDetected="unknown" and the error is a *FormatError.
func (p *Processor) Process(data []byte) ([]Record, Stats, error) {
	stats := Stats{FormatDetected: string(FormatUnknown)}

	headers, rows, err := readRows(data)
	if err != nil {
		return nil, stats, err
	}
	stats.TotalRows = len(rows)

	format, err := DetectFormat(headers)
	if err != nil {
		return nil, stats, err
	}
	stats.FormatDetected = string(format)
	p.log.Info("detected CSV format",
		zap.String("format", string(format)),
		zap.Int("rows", len(rows)))

	idx := headerIndex(format, headers)

	var valid []Record
	for i, row := range rows {
		name := field(row, idx, nameColumn(format))
		if isCemetery(name) {
			stats.CemeterySkipped++
			stats.SkippedRows++
			p.log.Debug("skipped cemetery record", zap.String("name", name))
			continue
		}

		rec, err := parseRow(format, row, idx)
		if err != nil {
			stats.SkippedRows++
			p.log.Warn("skipped invalid row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		valid = append(valid, rec)
	}

	kept, duplicates := Deduplicate(valid)
	stats.DuplicateRows = duplicates
	stats.SkippedRows += duplicates
	stats.ProcessedRows = len(kept)

	if len(kept) == 0 {
		return nil, stats, ErrNoValidRows
	}

	p.log.Info("finished processing CSV",
		zap.Int("total", stats.TotalRows),
		zap.Int("processed", stats.ProcessedRows),
		zap.Int("skipped", stats.SkippedRows),
		zap.Int("duplicates", stats.DuplicateRows),
		zap.Int("cemetery", stats.CemeterySkipped))
	return kept, stats, nil
}

func nameColumn(format Format) string {
	if format == FormatCRS {
		return "Owner 1"
	}
	return "Name"
}

func parseRow(format Format, row []string, idx map[string]int) (Record, error) {
	columns := manualColumns
	if format == FormatCRS {
		columns = crsColumns
	}

	// Column order within each format is name, address, city, state, zip.
	rec := Record{
		Name:    strings.TrimSpace(field(row, idx, columns[0])),
		Address: strings.TrimSpace(field(row, idx, columns[1])),
		City:    strings.TrimSpace(field(row, idx, columns[2])),
		State:   strings.TrimSpace(field(row, idx, columns[3])),
		Zip:     strings.TrimSpace(field(row, idx, columns[4])),
	}

	if rec.Name == "" {
		return Record{}, fmt.Errorf("name is required")
	}
	rec.Name = TruncateName(rec.Name)

	var missing []string
	if rec.Address == "" {
		missing = append(missing, columns[1])
	}
	if rec.City == "" {
		missing = append(missing, columns[2])
	}
	if rec.State == "" {
		missing = append(missing, columns[3])
	}
	if rec.Zip == "" {
		missing = append(missing, columns[4])
	}
	if len(missing) > 0 {
		return Record{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	return rec, nil
}

func field(row []string, idx map[string]int, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// TruncateName limits a recipient name to maxNameLen characters,
// cutting at the last complete word when possible. The limit counts
// runes, so accented names are never split mid-character.
func TruncateName(name string) string {
	name = strings.TrimSpace(name)
	runes := []rune(name)
	if len(runes) <= maxNameLen {
		return name
	}

	truncated := string(runes[:maxNameLen])
	if last := strings.LastIndex(truncated, " "); last > 0 {
		truncated = truncated[:last]
	}
	return strings.TrimSpace(truncated)
}
