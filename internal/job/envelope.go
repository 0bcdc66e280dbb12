// Package job serializes visited pages into Sidekiq-compatible queue jobs.
package job

import (
	"github.com/maman-crawler/maman/internal/crawler"
)

// Class is the Sidekiq worker class that consumes maman jobs.
const Class = "Maman"

// Envelope is the Sidekiq job payload. Field names and order are a wire
// contract with existing queue consumers and must not change.
type Envelope struct {
	Class      string `json:"class"`
	Retry      bool   `json:"retry"`
	Args       []Args `json:"args"`
	JID        string `json:"jid"`
	CreatedAt  int64  `json:"created_at"`
	EnqueuedAt int64  `json:"enqueued_at"`
}

// Args carries the fetched page itself.
type Args struct {
	URL      string            `json:"url"`
	Document string            `json:"document"`
	Headers  map[string]string `json:"headers"`
}

// Serializer builds envelopes from pages.
type Serializer struct {
	clock crawler.Clock
}

// NewSerializer creates a Serializer reading timestamps from clock.
func NewSerializer(clock crawler.Clock) *Serializer {
	return &Serializer{clock: clock}
}

// Serialize satisfies crawler.Serializer.
func (s *Serializer) Serialize(page *crawler.Page) any {
	return s.Envelope(page)
}

// Envelope builds the typed Sidekiq envelope for page. Retry is always true:
// retry execution belongs to the queue consumer, not the crawler. The two
// timestamps are read independently and may differ by a tick.
func (s *Serializer) Envelope(page *crawler.Page) Envelope {
	return Envelope{
		Class: Class,
		Retry: true,
		Args: []Args{{
			URL:      page.URL.String(),
			Document: page.Document,
			Headers:  page.Headers,
		}},
		JID:        page.JID,
		CreatedAt:  s.clock.Now().UTC().Unix(),
		EnqueuedAt: s.clock.Now().UTC().Unix(),
	}
}
