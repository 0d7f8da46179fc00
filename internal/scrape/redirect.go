package scrape

import "net/url"

// ClosedByRedirect reports whether a fetch was bounced off the posting page
// to a parent listing page, which the ATS hosts do when a job is taken down.
//
// The check is deliberately narrow: same host, and the final path strictly
// shorter than the requested one (the posting's path segment was dropped).
// A same-length or longer final path is never treated as closed, even if the
// content differs; extraction re-verifies liveness from the page itself.
func ClosedByRedirect(requestedURL, finalURL string) bool {
	orig, err := url.Parse(requestedURL)
	if err != nil {
		return false
	}
	final, err := url.Parse(finalURL)
	if err != nil {
		return false
	}
	return orig.Host == final.Host && len(final.Path) < len(orig.Path)
}
