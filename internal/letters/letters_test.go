package letters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mclemoreauction/tools/internal/auction"
	"github.com/mclemoreauction/tools/internal/csvproc"
)

func TestDefaultLetter(t *testing.T) {
	details := &auction.Details{
		AuctionCode: "25-100",
		Title:       "Estate Auction",
		Description: "Beautiful farm for sale",
		Date:        "2025-01-15",
		Time:        "2:00 PM CST",
		Location:    "123 Farm Rd, Columbia, TN 38401",
	}

	letter, err := DefaultLetter(details, "https://www.mclemoreauction.com")
	require.NoError(t, err)

	assert.Contains(t, letter, "Estate Auction")
	assert.Contains(t, letter, "123 Farm Rd, Columbia, TN 38401")
	assert.Contains(t, letter, "This auction closes 2025-01-15 at 2:00 PM CST")
	assert.Contains(t, letter, "https://www.mclemoreauction.com/register")
	// No manager in the description, so the fallback contact is used.
	assert.Contains(t, letter, "Will McLemore")
}

func TestDefaultLetterNilDetails(t *testing.T) {
	letter, err := DefaultLetter(nil, "https://www.mclemoreauction.com")
	require.NoError(t, err)
	assert.Contains(t, letter, "when auction details are available")
}

func TestSaveAndLoadProcessed(t *testing.T) {
	dir := t.TempDir()
	records := []csvproc.Record{
		{Name: "John Doe", Address: "123 Main St", City: "Springfield", State: "IL", Zip: "62701"},
		{Name: "Jane Smith", Address: "456 Oak Ave", City: "Springfield", State: "IL", Zip: "62702"},
	}

	require.NoError(t, SaveProcessed(dir, "25-100", records))

	loaded, err := LoadProcessed(dir, "25-100")
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestLoadProcessedMissing(t *testing.T) {
	_, err := LoadProcessed(t.TempDir(), "25-999")
	assert.ErrorIs(t, err, ErrNoProcessedAddresses)
}

func TestSaveProcessedOverwrites(t *testing.T) {
	dir := t.TempDir()
	first := []csvproc.Record{{Name: "A", Address: "1 St", City: "X", State: "TN", Zip: "37000"}}
	second := []csvproc.Record{{Name: "B", Address: "2 St", City: "Y", State: "TN", Zip: "37001"}}

	require.NoError(t, SaveProcessed(dir, "25-100", first))
	require.NoError(t, SaveProcessed(dir, "25-100", second))

	loaded, err := LoadProcessed(dir, "25-100")
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}
