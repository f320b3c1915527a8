package auction

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

// CleanDescription strips markup from an auction description and
// collapses whitespace, leaving plain text suitable for a letter body.
// Script and style contents are dropped entirely.
func CleanDescription(description string) string {
	if description == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(description))
	if err != nil {
		// Unparseable markup: fall back to the raw text.
		return strings.Join(strings.Fields(description), " ")
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}

// ManagerInfo holds the auction manager contact line extracted from a
// description. Fields stay empty when the description has no manager
// section or the markup changed.
type ManagerInfo struct {
	Name  string
	Phone string
	Email string
}

func (m ManagerInfo) IsComplete() bool {
	return m.Name != "" && m.Phone != "" && m.Email != ""
}

// FormatContactInfo renders the "Please contact ..." letter line,
// falling back to the default company contact when extraction came up
// short.
func (m ManagerInfo) FormatContactInfo() string {
	if !m.IsComplete() {
		return `Please contact <b>Will McLemore</b> at <b>(615) 636-9602</b> or ` +
			`<b><a href="mailto:will@mclemoreauction.com">will@mclemoreauction.com</a></b>`
	}
	return fmt.Sprintf(`Please contact <b>%s</b> at <b>%s</b> or <b><a href="mailto:%s">%s</a></b>`,
		m.Name, m.Phone, m.Email, m.Email)
}

// ExtractManagerInfo pulls the auction manager's name, phone and email
// out of the description HTML. The AuctionMethod listing format puts
// them in the paragraph that starts with "Auction Manager:"; if that
// structure changes this simply returns an incomplete ManagerInfo.
func ExtractManagerInfo(description string) ManagerInfo {
	var m ManagerInfo
	if description == "" || !strings.Contains(description, "Auction Manager:") {
		return m
	}

	doc, err := html.Parse(strings.NewReader(description))
	if err != nil {
		return m
	}

	section := findManagerSection(doc)
	if section == nil {
		return m
	}

	text := nodeText(section)

	for _, href := range mailtoLinks(section) {
		addr := strings.TrimPrefix(href, "mailto:")
		if strings.HasSuffix(addr, "@mclemoreauction.com") {
			m.Email = addr
			break
		}
	}

	if match := phonePattern.FindString(text); match != "" {
		m.Phone = match
	}

	name := text[strings.LastIndex(text, "Auction Manager:")+len("Auction Manager:"):]
	if m.Phone != "" {
		name = strings.ReplaceAll(name, m.Phone, "")
	}
	if m.Email != "" {
		name = strings.ReplaceAll(name, m.Email, "")
	}
	m.Name = strings.Trim(name, " \t\n,:-|")

	return m
}

// findManagerSection returns the parent element of the text node that
// mentions "Auction Manager:".
func findManagerSection(n *html.Node) *html.Node {
	if n.Type == html.TextNode && strings.Contains(n.Data, "Auction Manager:") {
		return n.Parent
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findManagerSection(c); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func mailtoLinks(n *html.Node) []string {
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && strings.HasPrefix(attr.Val, "mailto:") {
					links = append(links, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return links
}
