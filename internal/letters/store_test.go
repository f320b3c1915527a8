package letters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorePutGet(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("25-100", "<p>Hello</p>"))

	content, err := s.Get("25-100")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>", content)
}

func TestStoreLastWriteWins(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("25-100", "first"))
	require.NoError(t, s.Put("25-100", "second"))

	content, err := s.Get("25-100")
	require.NoError(t, err)
	assert.Equal(t, "second", content)
}

func TestStoreGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("no-such-auction")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
