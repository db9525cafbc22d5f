package profile

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/emreunal/gramscout/internal/types"
)

// SignalsFromHTML evaluates the independent detectors against a profile page
// snapshot: contact affordances, biography, follower text. Detectors that
// find nothing leave their signal zero-valued — the classifier and filters
// decide what that means.
func SignalsFromHTML(handle, profileHTML string) types.RawProfileSignals {
	sig := types.RawProfileSignals{Handle: handle}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(profileHTML))
	if err != nil {
		return sig
	}

	sig.HasContactAffordance = hasContactAffordance(doc)

	for _, sel := range bioSelectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			sig.Biography = text
			break
		}
	}

	for _, sel := range followerSelectors {
		s := doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		if title, ok := s.Attr("title"); ok && strings.TrimSpace(title) != "" {
			sig.FollowerText = strings.TrimSpace(title)
			break
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			sig.FollowerText = text
			break
		}
	}

	return sig
}

func hasContactAffordance(doc *goquery.Document) bool {
	for _, sel := range contactSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}

	found := false
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.ToLower(href)
		for _, marker := range contactLinkMarkers {
			if strings.Contains(href, marker) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
