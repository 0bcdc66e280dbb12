package crawler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// NewPage assembles a fetched document into a Page. Header names are
// lower-cased and collapsed to a single value per name (the last value wins
// when a header repeats). A fresh job ID is generated for every page.
func NewPage(u *url.URL, document string, headers http.Header, ids IDGenerator) (*Page, error) {
	jid, err := ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate job id: %w", err)
	}
	h := make(map[string]string, len(headers))
	for name, values := range headers {
		if len(values) == 0 {
			continue
		}
		h[strings.ToLower(name)] = values[len(values)-1]
	}
	return &Page{
		URL:      u,
		Document: document,
		Headers:  h,
		JID:      jid,
	}, nil
}
