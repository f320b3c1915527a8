// Package labels renders printable lot-label sheets: each label carries
// a QR code that resolves to the lot's page on the auction site.
package labels

import (
	"errors"
	"fmt"

	"github.com/signintech/gopdf"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// Letter-size page in points.
const (
	pageWidth  = 612.0
	pageHeight = 792.0
)

// Detailed sheet geometry: 3 columns x 10 rows, 30 labels per sheet.
const (
	detailedLabelWidth  = 189.0
	detailedLabelHeight = 72.0
	detailedTopMargin   = 36.0
	detailedSideMargin  = 20.0
	lotsPerSheet        = 30
)

// Standard 2"x1" label geometry.
const (
	standardLabelWidth  = 144.0
	standardLabelHeight = 72.0
	standardMargin      = 72.0
	standardSpacing     = 36.0
)

const siteLabel = "www.McLemoreAuction.com"

// Params describes one label-generation request.
type Params struct {
	AuctionCode string
	StartLot    int
	EndLot      int
}

func (p Params) Validate() error {
	if p.AuctionCode == "" {
		return errors.New("auction code cannot be empty")
	}
	if p.StartLot < 1 {
		return errors.New("starting lot number must be greater than 0")
	}
	if p.EndLot < p.StartLot {
		return errors.New("ending lot number must be greater than or equal to starting lot number")
	}
	return nil
}

// Generator renders label PDFs. fontPath must point at a TTF file; the
// PDF engine embeds it rather than relying on viewer fonts.
type Generator struct {
	siteURL  string
	fontPath string
	log      *zap.Logger
}

func NewGenerator(siteURL, fontPath string, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{siteURL: siteURL, fontPath: fontPath, log: log}
}

func (g *Generator) newPDF() (*gopdf.GoPdf, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		PageSize: gopdf.Rect{W: pageWidth, H: pageHeight},
		Unit:     gopdf.UnitPT,
	})
	if err := pdf.AddTTFFont("label", g.fontPath); err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}
	return pdf, nil
}

// DetailedSheets renders 3x10 sheets where each label carries the lot
// number, the site name and a QR code pointing at the lot URL.
func (g *Generator) DetailedSheets(p Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	pdf, err := g.newPDF()
	if err != nil {
		return nil, err
	}

	numSheets := (p.EndLot-p.StartLot)/lotsPerSheet + 1
	for sheet := 0; sheet < numSheets; sheet++ {
		if err := g.detailedSheet(pdf, p, p.StartLot+sheet*lotsPerSheet); err != nil {
			return nil, err
		}
	}

	g.log.Info("generated detailed label sheets",
		zap.String("auction_code", p.AuctionCode),
		zap.Int("sheets", numSheets))
	return pdf.GetBytesPdf(), nil
}

func (g *Generator) detailedSheet(pdf *gopdf.GoPdf, p Params, startLot int) error {
	pdf.AddPage()

	for row := 0; row < 10; row++ {
		for col := 0; col < 3; col++ {
			lot := startLot + row*3 + col
			if lot > p.EndLot {
				continue
			}

			// Outer columns are nudged toward the page edges to line
			// up with the label stock.
			xAdjust := 0.0
			switch col {
			case 0:
				xAdjust = -9
			case 2:
				xAdjust = 9
			}

			x := detailedSideMargin + float64(col)*detailedLabelWidth + xAdjust + 6
			y := detailedTopMargin + float64(row)*detailedLabelHeight + 8

			url := fmt.Sprintf("%s/auction/%s/lot/%04d", g.siteURL, p.AuctionCode, lot)
			if err := g.drawQR(pdf, url, x+130, y, 50); err != nil {
				return err
			}

			if err := pdf.SetFont("label", "", 27); err != nil {
				return err
			}
			pdf.SetX(x + 10)
			pdf.SetY(y + 12)
			if err := pdf.Cell(nil, fmt.Sprintf("Lot %04d", lot)); err != nil {
				return err
			}

			if err := pdf.SetFont("label", "", 12); err != nil {
				return err
			}
			pdf.SetX(x + 10)
			pdf.SetY(y + 42)
			if err := pdf.Cell(nil, siteLabel); err != nil {
				return err
			}
		}
	}
	return nil
}

// standardGrid returns how many standard labels fit per row and how
// many rows fit on a letter page.
func standardGrid() (labelsPerRow, rowsPerPage int) {
	rowWidth := pageWidth - 2*standardMargin + standardSpacing
	colHeight := pageHeight - 2*standardMargin + standardSpacing
	labelsPerRow = int(rowWidth / (standardLabelWidth + standardSpacing))
	rowsPerPage = int(colHeight / (standardLabelHeight + standardSpacing))
	return labelsPerRow, rowsPerPage
}

// StandardLabels renders plain 2"x1" labels whose QR payload is just
// "<code>-<lot>", used for inventory scanning rather than the website.
func (g *Generator) StandardLabels(p Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	pdf, err := g.newPDF()
	if err != nil {
		return nil, err
	}

	labelsPerRow, rowsPerPage := standardGrid()

	row, col := 0, 0
	pdf.AddPage()
	for lot := p.StartLot; lot <= p.EndLot; lot++ {
		if row >= rowsPerPage {
			pdf.AddPage()
			row, col = 0, 0
		}

		x := standardMargin + float64(col)*(standardLabelWidth+standardSpacing)
		y := standardMargin + float64(row)*(standardLabelHeight+standardSpacing)

		pdf.RectFromUpperLeftWithStyle(x, y, standardLabelWidth, standardLabelHeight, "D")
		if err := g.drawQR(pdf, fmt.Sprintf("%s-%d", p.AuctionCode, lot), x+5, y+11, 50); err != nil {
			return nil, err
		}

		if err := pdf.SetFont("label", "", 10); err != nil {
			return nil, err
		}
		pdf.SetX(x + 60)
		pdf.SetY(y + 22)
		if err := pdf.Cell(nil, p.AuctionCode); err != nil {
			return nil, err
		}
		pdf.SetX(x + 60)
		pdf.SetY(y + 40)
		if err := pdf.Cell(nil, fmt.Sprintf("Lot %d", lot)); err != nil {
			return nil, err
		}

		col++
		if col >= labelsPerRow {
			col = 0
			row++
		}
	}

	g.log.Info("generated standard labels",
		zap.String("auction_code", p.AuctionCode),
		zap.Int("labels", p.EndLot-p.StartLot+1))
	return pdf.GetBytesPdf(), nil
}

func (g *Generator) drawQR(pdf *gopdf.GoPdf, content string, x, y, size float64) error {
	png, err := qrcode.Encode(content, qrcode.Low, 256)
	if err != nil {
		return fmt.Errorf("failed to encode QR code: %w", err)
	}

	holder, err := gopdf.ImageHolderByBytes(png)
	if err != nil {
		return fmt.Errorf("failed to load QR image: %w", err)
	}
	return pdf.ImageByHolder(holder, x, y, &gopdf.Rect{W: size, H: size})
}
