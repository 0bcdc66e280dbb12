package link

import "net/url"

// Filter decides whether a discovered URL may join the frontier.
type Filter struct {
	// StrictOrigin compares host:port instead of bare hostname, so two URLs
	// differing only in port count as different origins.
	StrictOrigin bool
}

// Eligible reports whether candidate can be enqueued while crawling page:
// the scheme must be http or https, the candidate must not be the page
// itself, and both must be on the same host. Both URLs are expected to be
// fragment-stripped already.
func (f Filter) Eligible(page, candidate *url.URL) bool {
	switch candidate.Scheme {
	case "http", "https":
	default:
		return false
	}
	if candidate.String() == page.String() {
		return false
	}
	if f.StrictOrigin {
		return candidate.Host == page.Host
	}
	return candidate.Hostname() == page.Hostname()
}
