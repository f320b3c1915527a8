package auction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescription(t *testing.T) {
	html := `<p>Beautiful   property</p><script>alert("x")</script><style>p{}</style><p>for  sale</p>`
	assert.Equal(t, "Beautiful property for sale", CleanDescription(html))

	assert.Equal(t, "", CleanDescription(""))
	assert.Equal(t, "plain text", CleanDescription("plain   text"))
}

func TestExtractManagerInfo(t *testing.T) {
	description := `<p>Great farm auction.</p>
<p>Auction Manager: John Smith (615) 555-1234
<a href="mailto:john@mclemoreauction.com">john@mclemoreauction.com</a></p>`

	m := ExtractManagerInfo(description)
	assert.True(t, m.IsComplete())
	assert.Equal(t, "John Smith", m.Name)
	assert.Equal(t, "(615) 555-1234", m.Phone)
	assert.Equal(t, "john@mclemoreauction.com", m.Email)
	assert.Contains(t, m.FormatContactInfo(), "John Smith")
}

func TestExtractManagerInfoMissingSection(t *testing.T) {
	m := ExtractManagerInfo("<p>No manager here</p>")
	assert.False(t, m.IsComplete())
	// Fallback contact line is used when extraction fails.
	assert.Contains(t, m.FormatContactInfo(), "Will McLemore")
}

func TestExtractManagerInfoForeignEmailIgnored(t *testing.T) {
	description := `<p>Auction Manager: Jane Doe (615) 555-9999
<a href="mailto:jane@example.com">jane@example.com</a></p>`

	m := ExtractManagerInfo(description)
	assert.Empty(t, m.Email)
	assert.False(t, m.IsComplete())
}
