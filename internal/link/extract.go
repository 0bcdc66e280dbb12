package link

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Extract streams base's document through the HTML tokenizer and returns the
// eligible outbound links found in anchor href attributes, in document order.
// Malformed markup is skipped, never surfaced as an error, and duplicate
// links within a page are kept.
func Extract(base *url.URL, document string, filter Filter) []*url.URL {
	var links []*url.URL
	z := html.NewTokenizer(strings.NewReader(document))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// The tokenizer recovers from malformed markup on its own, so an
			// error token means the document is exhausted.
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if len(name) != 1 || name[0] != 'a' || !hasAttr {
				continue
			}
			for {
				key, value, more := z.TagAttr()
				if string(key) == "href" {
					if u, ok := eligible(base, string(value), filter); ok {
						links = append(links, u)
					}
				}
				if !more {
					break
				}
			}
		}
	}
}

func eligible(base *url.URL, href string, filter Filter) (*url.URL, bool) {
	u, ok := Resolve(base, href)
	if !ok {
		return nil, false
	}
	u = StripFragment(u)
	if !filter.Eligible(base, u) {
		return nil, false
	}
	return u, true
}
