package csvproc

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manualCSV = `Name,Address,City,State,Zip
John Doe,123 Main St,Springfield,IL,62701
Jane Smith,456 Oak Ave,Springfield,IL,62702
`

const crsCSV = `Owner 1,Owner Address,Owner City,Owner State,Owner Zip,Acreage
John Doe,123 Main St,Springfield,IL,62701,1.5
Jane Smith,456 Oak Ave,Springfield,IL,62702,0.8
`

func TestProcessManualFormat(t *testing.T) {
	p := NewProcessor(nil)

	records, stats, err := p.Process([]byte(manualCSV))
	require.NoError(t, err)

	assert.Equal(t, "manual", stats.FormatDetected)
	assert.Equal(t, 2, stats.TotalRows)
	assert.Equal(t, 2, stats.ProcessedRows)
	assert.Equal(t, 0, stats.SkippedRows)

	require.Len(t, records, 2)
	assert.Equal(t, "John Doe", records[0].Name)
	assert.Equal(t, "Springfield", records[1].City)
}

func TestProcessCRSFormat(t *testing.T) {
	p := NewProcessor(nil)

	records, stats, err := p.Process([]byte(crsCSV))
	require.NoError(t, err)

	assert.Equal(t, "crs", stats.FormatDetected)
	assert.Equal(t, 2, stats.ProcessedRows)
	assert.Equal(t, "456 Oak Ave", records[1].Address)
}

func TestProcessUnknownFormat(t *testing.T) {
	csv := "Address,Name,City,State\n123 Main St,John Doe,Springfield,IL\n"

	p := NewProcessor(nil)
	_, stats, err := p.Process([]byte(csv))

	require.Error(t, err)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), "CSV format not recognized")
	assert.Contains(t, formatErr.MissingManual, "Zip")
	assert.Equal(t, "unknown", stats.FormatDetected)
}

func TestProcessEmptyFile(t *testing.T) {
	p := NewProcessor(nil)

	for _, data := range []string{"", "   \n", "Name,Address,City,State,Zip\n"} {
		_, _, err := p.Process([]byte(data))
		assert.ErrorIs(t, err, ErrEmptyFile)
	}
}

func TestProcessDuplicateAddresses(t *testing.T) {
	csv := `Name,Address,City,State,Zip
John Doe,123 Main St,Springfield,IL,62701
Jane Smith,123 Main St,Springfield,IL,62701
`
	p := NewProcessor(nil)
	records, stats, err := p.Process([]byte(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.DuplicateRows)
	require.Len(t, records, 1)
	// First occurrence wins.
	assert.Equal(t, "John Doe", records[0].Name)
}

func TestProcessDuplicateCaseAndWhitespace(t *testing.T) {
	csv := `Name,Address,City,State,Zip
John Doe,123 Main St,Springfield,IL,62701
Jane Smith,123  MAIN   st,SPRINGFIELD,il,62701
`
	p := NewProcessor(nil)
	records, stats, err := p.Process([]byte(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.DuplicateRows)
	assert.Len(t, records, 1)
}

func TestProcessCemeteryRecords(t *testing.T) {
	csv := `Name,Address,City,State,Zip
Oak Hill Cemetery,1 Graveyard Rd,Springfield,IL,62701
First Baptist Church,2 Chapel Ln,Springfield,IL,62701
John Doe,123 Main St,Springfield,IL,62701
`
	p := NewProcessor(nil)
	records, stats, err := p.Process([]byte(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.CemeterySkipped)
	assert.Equal(t, 0, stats.DuplicateRows)
	assert.Equal(t, 1, stats.ProcessedRows)
	assert.Len(t, records, 1)
}

func TestProcessInvalidRowsSkipped(t *testing.T) {
	csv := `Name,Address,City,State,Zip
John Doe,123 Main St,Springfield,IL,62701
,456 Oak Ave,Springfield,IL,62702
Jane Smith,,Springfield,IL,62702
`
	p := NewProcessor(nil)
	_, stats, err := p.Process([]byte(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalRows)
	assert.Equal(t, 1, stats.ProcessedRows)
	assert.Equal(t, 2, stats.SkippedRows)
}

func TestProcessStatsBalance(t *testing.T) {
	// Mix of valid, cemetery, duplicate and invalid rows.
	csv := `Name,Address,City,State,Zip
John Doe,123 Main St,Springfield,IL,62701
Oak Hill Cemetery,1 Graveyard Rd,Springfield,IL,62701
Jane Smith,123 Main St,Springfield,IL,62701
Bad Row,,,,
Alice Brown,789 Elm St,Springfield,IL,62703
`
	p := NewProcessor(nil)
	_, stats, err := p.Process([]byte(csv))
	require.NoError(t, err)

	assert.Equal(t, stats.TotalRows, stats.ProcessedRows+stats.SkippedRows)
	assert.Equal(t, 1, stats.CemeterySkipped)
	assert.Equal(t, 1, stats.DuplicateRows)
	assert.Equal(t, 2, stats.ProcessedRows)
}

func TestProcessNoValidRows(t *testing.T) {
	csv := `Name,Address,City,State,Zip
Oak Hill Cemetery,1 Graveyard Rd,Springfield,IL,62701
`
	p := NewProcessor(nil)
	_, stats, err := p.Process([]byte(csv))

	assert.ErrorIs(t, err, ErrNoValidRows)
	assert.Equal(t, 1, stats.CemeterySkipped)
}

func TestProcessLatin1AndBOM(t *testing.T) {
	p := NewProcessor(nil)

	// UTF-8 BOM in front of the header row.
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte(manualCSV)...)
	_, stats, err := p.Process(withBOM)
	require.NoError(t, err)
	assert.Equal(t, "manual", stats.FormatDetected)

	// Latin-1 encoded name (0xE9 = é).
	latin1 := []byte("Name,Address,City,State,Zip\nRen")
	latin1 = append(latin1, 0xE9)
	latin1 = append(latin1, []byte(" Dubois,123 Main St,Springfield,IL,62701\n")...)
	records, _, err := p.Process(latin1)
	require.NoError(t, err)
	assert.Equal(t, "René Dubois", records[0].Name)
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "John Doe", TruncateName("John Doe"))
	assert.Equal(t, "", TruncateName("   "))

	long := "John Jacob Jingleheimer Schmidt Family Trust of Tennessee"
	got := TruncateName(long)
	assert.LessOrEqual(t, len(got), 40)
	// Cut falls on a word boundary, not mid-word.
	assert.Equal(t, "John Jacob Jingleheimer Schmidt Family", got)
}

func TestTruncateNameMultibyte(t *testing.T) {
	// The limit counts runes; a long accented name must not be cut
	// mid-character.
	accented := strings.Repeat("é", 45)
	got := TruncateName(accented)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 40, utf8.RuneCountInString(got))

	assert.Equal(t, "Renée Dubois", TruncateName("Renée Dubois"))
}
