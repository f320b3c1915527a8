package labels

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	valid := Params{AuctionCode: "25-100", StartLot: 1, EndLot: 30}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name string
		p    Params
	}{
		{"empty code", Params{StartLot: 1, EndLot: 10}},
		{"zero start", Params{AuctionCode: "25-100", StartLot: 0, EndLot: 10}},
		{"end before start", Params{AuctionCode: "25-100", StartLot: 10, EndLot: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.p.Validate())
		})
	}
}

func TestStandardGrid(t *testing.T) {
	labelsPerRow, rowsPerPage := standardGrid()
	assert.Equal(t, 2, labelsPerRow)
	assert.Equal(t, 6, rowsPerPage)
}

func TestGeneratorRejectsInvalidParams(t *testing.T) {
	g := NewGenerator("https://www.mclemoreauction.com", "missing.ttf", nil)

	_, err := g.DetailedSheets(Params{})
	assert.Error(t, err)

	_, err = g.StandardLabels(Params{AuctionCode: "25-100", StartLot: 5, EndLot: 1})
	assert.Error(t, err)
}

// Rendering needs a real TTF on disk; point LABEL_FONT_FILE at one to
// exercise the full PDF path.
func TestDetailedSheetsRendering(t *testing.T) {
	fontPath := os.Getenv("LABEL_FONT_FILE")
	if fontPath == "" {
		t.Skip("Skipping rendering test: LABEL_FONT_FILE not set")
	}

	g := NewGenerator("https://www.mclemoreauction.com", fontPath, nil)

	pdf, err := g.DetailedSheets(Params{AuctionCode: "25-100", StartLot: 1, EndLot: 45})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	// 45 lots at 30 per sheet means two sheets.
	assert.Contains(t, string(pdf), "/Type /Page")

	pdf, err = g.StandardLabels(Params{AuctionCode: "25-100", StartLot: 1, EndLot: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
