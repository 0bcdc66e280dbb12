package crawler

import (
	"context"
	"time"
)

// Fetcher fetches a URL and returns the body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResponse, error)
}

// Publisher pushes serialized job payloads to the work queue.
type Publisher interface {
	Publish(ctx context.Context, payload any) error
	Close() error
}

// Serializer converts a visited Page into the payload published for it.
type Serializer interface {
	Serialize(page *Page) any
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces job IDs.
type IDGenerator interface {
	NewID() (string, error)
}
