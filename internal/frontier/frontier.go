// Package frontier tracks the visited and unvisited URL state for a crawl.
package frontier

import (
	"net/url"
	"sync"
)

// Frontier owns the visited log and the LIFO stack of discovered URLs. It is
// the single ownership point for crawl state: workers claim one URL at a time
// via Next and report back via Done, so a URL enters the visited log at most
// once even when several workers discover it concurrently.
type Frontier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	stack      []*url.URL
	visited    []*url.URL
	visitedSet map[string]struct{}
	inflight   map[string]struct{}
	canceled   bool
}

// New creates an empty Frontier.
func New() *Frontier {
	f := &Frontier{
		visitedSet: make(map[string]struct{}),
		inflight:   make(map[string]struct{}),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Push appends u to the unvisited stack. Duplicates and already-visited URLs
// are kept; visited status is re-checked at claim time, not here.
func (f *Frontier) Push(u *url.URL) {
	f.mu.Lock()
	f.stack = append(f.stack, u)
	f.mu.Unlock()
	f.cond.Broadcast()
}

// Next pops URLs off the stack until it finds one that is neither visited nor
// claimed by another worker, and claims it. It blocks while the stack is
// empty but claims are outstanding, since an in-flight page may still push
// new links. It returns false once the stack has drained with no claims left,
// or after Cancel.
func (f *Frontier) Next() (*url.URL, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		if f.canceled {
			return nil, false
		}
		for len(f.stack) > 0 {
			n := len(f.stack) - 1
			u := f.stack[n]
			f.stack = f.stack[:n]
			key := u.String()
			if _, ok := f.visitedSet[key]; ok {
				continue
			}
			if _, ok := f.inflight[key]; ok {
				continue
			}
			f.inflight[key] = struct{}{}
			return u, true
		}
		if len(f.inflight) == 0 {
			return nil, false
		}
		f.cond.Wait()
	}
}

// Done releases the claim on u. A successful visit is recorded in the visited
// log exactly once; a failed fetch leaves no trace, so the URL can be claimed
// again if it is rediscovered later.
func (f *Frontier) Done(u *url.URL, visited bool) {
	f.mu.Lock()
	key := u.String()
	delete(f.inflight, key)
	if visited {
		if _, ok := f.visitedSet[key]; !ok {
			f.visitedSet[key] = struct{}{}
			f.visited = append(f.visited, u)
		}
	}
	f.mu.Unlock()
	f.cond.Broadcast()
}

// Cancel makes all current and future Next calls return false. In-flight
// claims are unaffected and should still be reported via Done.
func (f *Frontier) Cancel() {
	f.mu.Lock()
	f.canceled = true
	f.mu.Unlock()
	f.cond.Broadcast()
}

// Visited returns the visit log in first-visited order.
func (f *Frontier) Visited() []*url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*url.URL, len(f.visited))
	copy(out, f.visited)
	return out
}

// Depth returns the number of URLs waiting on the stack.
func (f *Frontier) Depth() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stack)
}
