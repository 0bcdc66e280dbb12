package frontier

import (
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNextIsLIFO(t *testing.T) {
	t.Parallel()

	f := New()
	f.Push(mustParse(t, "https://a.com/1"))
	f.Push(mustParse(t, "https://a.com/2"))
	f.Push(mustParse(t, "https://a.com/3"))

	for _, want := range []string{"https://a.com/3", "https://a.com/2", "https://a.com/1"} {
		u, ok := f.Next()
		require.True(t, ok)
		require.Equal(t, want, u.String())
		f.Done(u, true)
	}

	_, ok := f.Next()
	require.False(t, ok)
}

func TestVisitedRecheckedAtClaimTime(t *testing.T) {
	t.Parallel()

	f := New()
	// Duplicates are accepted at push time.
	f.Push(mustParse(t, "https://a.com/x"))
	f.Push(mustParse(t, "https://a.com/x"))

	u, ok := f.Next()
	require.True(t, ok)
	f.Done(u, true)

	// The second occurrence is discarded at claim time.
	_, ok = f.Next()
	require.False(t, ok)
	require.Len(t, f.Visited(), 1)
}

func TestFailedClaimLeavesNoTrace(t *testing.T) {
	t.Parallel()

	f := New()
	f.Push(mustParse(t, "https://a.com/x"))

	u, ok := f.Next()
	require.True(t, ok)
	f.Done(u, false)
	require.Empty(t, f.Visited())

	// A rediscovered URL can be claimed again after a failed fetch.
	f.Push(mustParse(t, "https://a.com/x"))
	u, ok = f.Next()
	require.True(t, ok)
	require.Equal(t, "https://a.com/x", u.String())
	f.Done(u, true)
	require.Len(t, f.Visited(), 1)
}

func TestVisitedRecordedAtMostOnce(t *testing.T) {
	t.Parallel()

	f := New()
	u := mustParse(t, "https://a.com/x")
	f.Done(u, true)
	f.Done(u, true)
	require.Len(t, f.Visited(), 1)
}

func TestNextBlocksWhileClaimsOutstanding(t *testing.T) {
	t.Parallel()

	f := New()
	f.Push(mustParse(t, "https://a.com/parent"))

	parent, ok := f.Next()
	require.True(t, ok)

	got := make(chan string, 1)
	go func() {
		u, ok := f.Next()
		if !ok {
			got <- ""
			return
		}
		f.Done(u, true)
		got <- u.String()
	}()

	// The goroutine must wait: the stack is empty but the parent claim may
	// still push links.
	f.Push(mustParse(t, "https://a.com/child"))
	f.Done(parent, true)
	require.Equal(t, "https://a.com/child", <-got)
}

func TestCancelUnblocksWaiters(t *testing.T) {
	t.Parallel()

	f := New()
	f.Push(mustParse(t, "https://a.com/parent"))
	_, ok := f.Next()
	require.True(t, ok)

	done := make(chan bool, 1)
	go func() {
		_, ok := f.Next()
		done <- ok
	}()
	f.Cancel()
	require.False(t, <-done)
}

func TestConcurrentClaimsAreExclusive(t *testing.T) {
	t.Parallel()

	f := New()
	const n = 200
	urls := make([]*url.URL, 0, n)
	for i := 0; i < n; i++ {
		u := mustParse(t, "https://a.com/p")
		u.Path = u.Path + "/" + string(rune('a'+i%26))
		urls = append(urls, u)
	}
	// Push every URL several times from several goroutines.
	var pushers sync.WaitGroup
	for g := 0; g < 4; g++ {
		pushers.Add(1)
		go func() {
			defer pushers.Done()
			for _, u := range urls {
				f.Push(u)
			}
		}()
	}
	pushers.Wait()

	var workers sync.WaitGroup
	for g := 0; g < 8; g++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for {
				u, ok := f.Next()
				if !ok {
					return
				}
				f.Done(u, true)
			}
		}()
	}
	workers.Wait()

	visited := f.Visited()
	seen := make(map[string]int)
	for _, u := range visited {
		seen[u.String()]++
	}
	for key, count := range seen {
		require.Equal(t, 1, count, "url %s visited more than once", key)
	}
	require.Len(t, seen, 26)
}
