// Package link turns raw href values into frontier-eligible URLs.
package link

import "net/url"

// Resolve parses raw as an absolute URL, falling back to resolving it as a
// reference against base. Values that do not parse at all yield false.
func Resolve(base *url.URL, raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	if u.IsAbs() {
		return u, true
	}
	return base.ResolveReference(u), true
}

// StripFragment returns a copy of u with any #fragment removed. All frontier
// membership comparisons happen on fragment-stripped URLs.
func StripFragment(u *url.URL) *url.URL {
	stripped := *u
	stripped.Fragment = ""
	stripped.RawFragment = ""
	return &stripped
}
