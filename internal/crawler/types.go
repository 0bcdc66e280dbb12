// Package crawler defines core crawl types shared across subsystems and the
// engine that drives the fetch pipeline.
package crawler

import (
	"net/http"
	"net/url"
	"time"
)

// Page is one fetched document moving through the pipeline. It is created
// once per successful fetch, consumed by extraction and serialization, and
// then discarded.
type Page struct {
	// URL is the canonical, fragment-stripped URL the page was fetched from.
	URL *url.URL
	// Document is the decoded response body.
	Document string
	// Headers maps lower-cased header names to values, one value per name.
	Headers map[string]string
	// URLs holds the eligible outbound links in document order. Duplicates
	// within a page are not removed.
	URLs []*url.URL
	// JID is the job identifier published alongside the page.
	JID string
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}
