package crawler

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maman-crawler/maman/internal/frontier"
	"github.com/maman-crawler/maman/internal/link"
	"github.com/maman-crawler/maman/internal/metrics"
)

// Config controls Engine behavior.
type Config struct {
	// Concurrency is the number of fetch workers. With one worker the crawl
	// is the classic sequential depth-first traversal.
	Concurrency int
	// StrictOrigin makes the link filter compare host:port instead of bare
	// hostname.
	StrictOrigin bool
}

// Engine drives the fetch, extract, publish loop over the frontier.
type Engine struct {
	cfg        Config
	fetcher    Fetcher
	publisher  Publisher
	serializer Serializer
	ids        IDGenerator
	frontier   *frontier.Frontier
	filter     link.Filter
	logger     *zap.Logger
}

// NewEngine wires the crawl pipeline.
func NewEngine(
	cfg Config,
	fetcher Fetcher,
	publisher Publisher,
	serializer Serializer,
	ids IDGenerator,
	logger *zap.Logger,
) *Engine {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.Init()
	return &Engine{
		cfg:        cfg,
		fetcher:    fetcher,
		publisher:  publisher,
		serializer: serializer,
		ids:        ids,
		frontier:   frontier.New(),
		filter:     link.Filter{StrictOrigin: cfg.StrictOrigin},
		logger:     logger,
	}
}

// Run crawls outward from seed until the frontier drains, then returns.
// Canceling ctx stops the scheduling of new fetches and lets in-flight ones
// finish; the context error is returned in that case.
func (e *Engine) Run(ctx context.Context, seed string) error {
	seedURL, err := url.Parse(seed)
	if err != nil {
		return fmt.Errorf("parse seed url %q: %w", seed, err)
	}
	crawlID := uuid.NewString()
	logger := e.logger.With(zap.String("crawl_id", crawlID))
	logger.Info("crawl started",
		zap.String("seed", seedURL.String()),
		zap.Int("concurrency", e.cfg.Concurrency),
	)

	e.frontier.Push(link.StripFragment(seedURL))
	stop := context.AfterFunc(ctx, e.frontier.Cancel)
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				u, ok := e.frontier.Next()
				if !ok {
					return
				}
				e.process(ctx, u, logger)
			}
		}()
	}
	wg.Wait()

	logger.Info("crawl finished", zap.Int("visited", len(e.frontier.Visited())))
	return ctx.Err()
}

// Visited returns the URLs visited so far in first-visited order.
func (e *Engine) Visited() []*url.URL {
	return e.frontier.Visited()
}

func (e *Engine) process(ctx context.Context, u *url.URL, logger *zap.Logger) {
	page, ok := e.fetchPage(ctx, u, logger)
	if !ok {
		// A failed fetch is dropped for this crawl, never retried.
		e.frontier.Done(u, false)
		return
	}
	page.URLs = link.Extract(page.URL, page.Document, e.filter)
	e.visit(ctx, page, logger)
}

// fetchPage fetches u and builds a Page from the response. Transport errors
// and bodies that are not valid UTF-8 both drop the URL for this cycle.
func (e *Engine) fetchPage(ctx context.Context, u *url.URL, logger *zap.Logger) (*Page, bool) {
	resp, err := e.fetcher.Fetch(ctx, u.String())
	if err != nil {
		logger.Debug("fetch failed", zap.String("url", u.String()), zap.Error(err))
		metrics.ObserveFetchFailure()
		return nil, false
	}
	if !utf8.Valid(resp.Body) {
		logger.Debug("response body is not valid utf-8", zap.String("url", u.String()))
		metrics.ObserveFetchFailure()
		return nil, false
	}
	page, err := NewPage(u, string(resp.Body), resp.Headers, e.ids)
	if err != nil {
		logger.Debug("build page failed", zap.String("url", u.String()), zap.Error(err))
		return nil, false
	}
	return page, true
}

// visit records the page as visited, feeds its outbound links to the
// frontier, and publishes the serialized job. A publish failure is logged but
// the page stays visited.
func (e *Engine) visit(ctx context.Context, page *Page, logger *zap.Logger) {
	// Links go on the stack before the claim is released so a waiting worker
	// cannot observe a drained frontier in the middle of a visit.
	for _, u := range page.URLs {
		e.frontier.Push(u)
	}
	e.frontier.Done(page.URL, true)
	metrics.ObservePage(len(page.URLs))
	metrics.SetFrontierDepth(e.frontier.Depth())

	if err := e.publisher.Publish(ctx, e.serializer.Serialize(page)); err != nil {
		logger.Error("queue publish failed",
			zap.String("url", page.URL.String()),
			zap.String("jid", page.JID),
			zap.Error(err),
		)
		metrics.ObservePublishFailure()
		return
	}
	metrics.ObserveJobPublished()
	logger.Debug("page published",
		zap.String("url", page.URL.String()),
		zap.String("jid", page.JID),
		zap.Int("links", len(page.URLs)),
	)
}
