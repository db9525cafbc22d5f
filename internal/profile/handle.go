package profile

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ResolveHandle extracts the authoring account's username from a post page.
// It runs the ordered selector fallback chain; each entry either yields a
// valid handle or passes to the next. Returns "" when no strategy succeeds —
// the caller skips the post, this is not an error.
func ResolveHandle(postHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(postHTML))
	if err == nil {
		for _, sel := range handleSelectors {
			var found string
			doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				href, ok := s.Attr("href")
				if !ok {
					return true
				}
				if h := handleFromHref(href); h != "" {
					found = h
					return false
				}
				return true
			})
			if found != "" {
				return found
			}
		}
	}

	// XPath fallback
	root, err := htmlquery.Parse(strings.NewReader(postHTML))
	if err != nil {
		return ""
	}
	for _, n := range htmlquery.Find(root, handleXPath) {
		if h := handleFromNode(n); h != "" {
			return h
		}
	}
	return ""
}

func handleFromNode(n *html.Node) string {
	return handleFromHref(htmlquery.SelectAttr(n, "href"))
}

// handleFromHref validates a profile href as a username candidate. Profile
// links are single-segment paths ("/username/"); anything deeper is a
// permalink or site page, never a profile.
func handleFromHref(href string) string {
	href = strings.SplitN(href, "?", 2)[0]
	var segments []string
	for _, p := range strings.Split(href, "/") {
		if p != "" {
			segments = append(segments, p)
		}
	}
	if len(segments) != 1 || !validHandle(segments[0]) {
		return ""
	}
	return segments[0]
}

// validHandle rejects candidates that cannot be usernames: purely numeric
// IDs, single characters, and reserved site paths.
func validHandle(h string) bool {
	if len(h) < 2 {
		return false
	}
	if _, reserved := reservedSegments[strings.ToLower(h)]; reserved {
		return false
	}
	numeric := true
	for _, r := range h {
		if r < '0' || r > '9' {
			numeric = false
			break
		}
	}
	return !numeric
}
