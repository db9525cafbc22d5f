package profile

import "testing"

const postWithHeaderLink = `<html><body>
<main>
  <article>
    <header>
      <a href="/kahveci_mehmet/" role="link">kahveci_mehmet</a>
    </header>
    <div>post content</div>
  </article>
</body></html>`

const postWithSecondaryLink = `<html><body>
<div>
  <a href="/explore/" role="link">Explore</a>
  <a href="/butik_ayse/" role="link">butik_ayse</a>
</div>
</body></html>`

const postWithPlainHeaderAnchor = `<html><body>
<article>
  <header>
    <a href="/lezzet_duragi">lezzet_duragi</a>
  </header>
</article>
</body></html>`

// No role attributes and no article wrapper: only the XPath strategy finds it.
const postNeedingXPath = `<html><body>
<header>
  <a href="/tatli_atolyesi/">tatli atolyesi</a>
</header>
</body></html>`

const postWithOnlyReservedLinks = `<html><body>
<header>
  <a href="/explore/" role="link">Explore</a>
  <a href="/p/AbC123/" role="link">permalink</a>
  <a href="/accounts/login/" role="link">login</a>
</header>
</body></html>`

func TestResolveHandleHeaderLink(t *testing.T) {
	if got := ResolveHandle(postWithHeaderLink); got != "kahveci_mehmet" {
		t.Errorf("expected kahveci_mehmet, got %q", got)
	}
}

func TestResolveHandleSkipsReserved(t *testing.T) {
	if got := ResolveHandle(postWithSecondaryLink); got != "butik_ayse" {
		t.Errorf("expected butik_ayse, got %q", got)
	}
}

func TestResolveHandleFallbackChain(t *testing.T) {
	if got := ResolveHandle(postWithPlainHeaderAnchor); got != "lezzet_duragi" {
		t.Errorf("expected lezzet_duragi, got %q", got)
	}
}

func TestResolveHandleXPathFallback(t *testing.T) {
	if got := ResolveHandle(postNeedingXPath); got != "tatli_atolyesi" {
		t.Errorf("expected tatli_atolyesi, got %q", got)
	}
}

func TestResolveHandleNoCandidate(t *testing.T) {
	if got := ResolveHandle(postWithOnlyReservedLinks); got != "" {
		t.Errorf("expected empty handle, got %q", got)
	}
	if got := ResolveHandle("<html><body><p>nothing here</p></body></html>"); got != "" {
		t.Errorf("expected empty handle for linkless page, got %q", got)
	}
}

func TestHandleFromHref(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/kahveci_mehmet/", "kahveci_mehmet"},
		{"/kahveci_mehmet", "kahveci_mehmet"},
		{"/kahveci_mehmet/?hl=tr", "kahveci_mehmet"},
		{"/p/AbC123/", ""},       // permalink, not a profile
		{"/accounts/login/", ""}, // site page
		{"/123456/", ""},         // purely numeric
		{"/a/", ""},              // too short
		{"/stories/", ""},        // reserved segment
		{"", ""},
	}

	for _, tt := range tests {
		if got := handleFromHref(tt.href); got != tt.want {
			t.Errorf("handleFromHref(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
