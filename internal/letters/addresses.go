package letters

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mclemoreauction/tools/internal/csvproc"
)

// ErrNoProcessedAddresses is returned when letters are requested for an
// auction that has no processed upload yet.
var ErrNoProcessedAddresses = errors.New("no processed addresses found for auction")

const processedFileName = "processed_addresses.csv"

var processedHeader = []string{"Name", "Address", "City", "State", "Zip"}

// SaveProcessed writes the deduplicated upload result for an auction to
// data/<code>/processed_addresses.csv, replacing any previous upload.
func SaveProcessed(dataDir, auctionCode string, records []csvproc.Record) error {
	dir := filepath.Join(dataDir, auctionCode)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create auction data directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, processedFileName))
	if err != nil {
		return fmt.Errorf("failed to create processed addresses file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(processedHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write([]string{r.Name, r.Address, r.City, r.State, r.Zip}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadProcessed reads back a previously saved upload.
func LoadProcessed(dataDir, auctionCode string) ([]csvproc.Record, error) {
	path := filepath.Join(dataDir, auctionCode, processedFileName)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoProcessedAddresses
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open processed addresses file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		return nil, ErrNoProcessedAddresses
	}

	var records []csvproc.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read processed addresses file: %w", err)
		}
		if len(row) < 5 {
			continue
		}
		records = append(records, csvproc.Record{
			Name: row[0], Address: row[1], City: row[2], State: row[3], Zip: row[4],
		})
	}

	if len(records) == 0 {
		return nil, ErrNoProcessedAddresses
	}
	return records, nil
}
