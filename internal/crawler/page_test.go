package crawler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maman-crawler/maman/internal/id/sidekiq"
)

func TestNewPageLowercasesHeaders(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://a.com/p")
	require.NoError(t, err)

	headers := http.Header{
		"Content-Type":   {"text/html; charset=utf-8"},
		"X-Cache-Status": {"MISS", "HIT"},
	}
	page, err := NewPage(u, "<html></html>", headers, sidekiq.New())
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"content-type": "text/html; charset=utf-8",
		// When a header repeats, the last value wins.
		"x-cache-status": "HIT",
	}, page.Headers)
}

func TestNewPageFreshState(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://a.com/p")
	require.NoError(t, err)

	page, err := NewPage(u, "body", nil, sidekiq.New())
	require.NoError(t, err)
	require.Equal(t, u, page.URL)
	require.Equal(t, "body", page.Document)
	require.Len(t, page.JID, 24)
	require.Empty(t, page.URLs)

	other, err := NewPage(u, "body", nil, sidekiq.New())
	require.NoError(t, err)
	require.NotEqual(t, page.JID, other.JID)
}
