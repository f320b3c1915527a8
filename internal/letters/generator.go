package letters

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/mclemoreauction/tools/internal/auction"
)

const signatureImageURL = "https://tools.mclemoreauction.com/static/images/signature.png"

var defaultLetterTmpl = template.Must(template.New("letter").Parse(`
<p>{{.CurrentDate}}</p>

<p>RE: Upcoming Auction of <b>{{.Title}}</b></p>

<p>Dear Sir or Madam:</p>

<p>{{.Description}}</p>

<p>The property address is <b>{{.Location}}.</b></p>

<p>Based on our research, you own real estate near the property we are selling.</p>

<p>The auction will take place on our website at <b><a href="{{.SiteURL}}">{{.SiteURL}}</a></b>. You may register to bid at <b><a href="{{.SiteURL}}/register">{{.SiteURL}}/register</a></b>.</p>

<p>Note: <b>This auction closes {{.BiddingEnd}}.</b></p>

<p>{{.ContactLine}} to schedule an appointment to view this property.</p>

<p><b>Please scan the QR code to visit our website.</b></p>

<ul class="signature-list">
    <li class="signature-paragraph">
        Yours Truly,<br>
        <img src="{{.SignatureURL}}" alt="Signature" class="signature-image"><br>
        <b>Will McLemore, CAI</b><br>
        <b><a href="mailto:will@mclemoreauction.com">will@mclemoreauction.com</a> | (615) 636-9602</b>
    </li>
</ul>
`))

type letterData struct {
	CurrentDate  string
	Title        string
	Description  string
	Location     string
	SiteURL      string
	BiddingEnd   string
	ContactLine  template.HTML
	SignatureURL string
}

// DefaultLetter renders the stock neighbor letter for an auction. It is
// used when no edited template exists for the auction code yet.
func DefaultLetter(details *auction.Details, siteURL string) (string, error) {
	if details == nil {
		return "Letter content will be generated when auction details are available.", nil
	}

	biddingEnd := details.Date
	if details.Time != "" {
		biddingEnd += " at " + details.Time
	}

	data := letterData{
		CurrentDate:  time.Now().Format("January 2, 2006"),
		Title:        details.Title,
		Description:  details.Description,
		Location:     details.Location,
		SiteURL:      siteURL,
		BiddingEnd:   biddingEnd,
		ContactLine:  template.HTML(details.Manager.FormatContactInfo()),
		SignatureURL: signatureImageURL,
	}

	var b strings.Builder
	if err := defaultLetterTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render default letter: %w", err)
	}
	return b.String(), nil
}
