package util

import "github.com/PuerkitoBio/goquery"

// Source produces one candidate value for a field from the document.
// Title, location and description extraction are all "try these in order,
// keep the first non-empty hit, else a platform default", so the chains are
// built from these instead of stacked conditionals per platform.
type Source func(*goquery.Document) string

// Text reads the text of the first node matching sel.
func Text(sel string) Source {
	return func(doc *goquery.Document) string {
		return CleanText(doc.Find(sel).First().Text())
	}
}

// Attr reads an attribute of the first node matching sel, typically the
// content attribute of a meta tag.
func Attr(sel, attr string) Source {
	return func(doc *goquery.Document) string {
		v, _ := doc.Find(sel).First().Attr(attr)
		return CleanText(v)
	}
}

// FirstMatch walks the sources in priority order and returns the first
// non-empty value, or def when nothing matches.
func FirstMatch(doc *goquery.Document, def string, sources ...Source) string {
	for _, src := range sources {
		if v := src(doc); v != "" {
			return v
		}
	}
	return def
}
