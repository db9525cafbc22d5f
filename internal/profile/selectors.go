package profile

// CSS selectors used against post and profile pages. Each list is an ordered
// fallback chain, tried first to last.

// handleSelectors locate the authoring account's profile link on a post page.
var handleSelectors = []string{
	`header a[href^="/"][role="link"]`,
	`a[href^="/"][role="link"]`,
	`article header a[href^="/"]`,
	`div[data-testid="post-header"] a[href^="/"]`,
}

// handleXPath is the last-resort strategy when none of the CSS chains match.
const handleXPath = `//header//a[starts-with(@href, "/")]`

// reservedSegments are path segments that are never usernames.
var reservedSegments = map[string]struct{}{
	"explore":   {},
	"p":         {},
	"post":      {},
	"reel":      {},
	"reels":     {},
	"stories":   {},
	"comments":  {},
	"tags":      {},
	"saved":     {},
	"direct":    {},
	"accounts":  {},
	"challenge": {},
}

// bioSelectors locate the biography text on a profile page.
var bioSelectors = []string{
	`section span[dir="auto"] > div[role="button"] > span[dir="auto"]`,
	`div[data-testid="user-bio"] span`,
	`span[data-bloks-name="ig-text"][dir="auto"]`,
	`header section > div > span[dir="auto"]`,
}

// followerSelectors locate the follower-count element. The span[title] entry
// comes first so the exact count in the title attribute wins over the
// abbreviated rendered text.
var followerSelectors = []string{
	`a[href$="/followers/"] span[title]`,
	`a[href$="/followers/"] span`,
	`li[class*="x78zum5"] > span > span`,
}

// contactSelectors detect commercial contact affordances.
var contactSelectors = []string{
	`a[href="/direct/new/"] div[role="button"][tabindex="0"]`,
	`button[aria-label*="Email"]`,
	`button[aria-label*="Call"]`,
	`button[aria-label*="Directions"]`,
	`button[aria-label*="İletişim"]`,
	`[data-testid="business_category"]`,
}

// contactLinkMarkers flag outbound links that imply a business profile.
var contactLinkMarkers = []string{
	"mailto:",
	"tel:",
	"maps.google.com",
	"instagram.com/l/",
}
