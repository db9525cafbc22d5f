package profile

import "testing"

const profileWithEmailButton = `<html><body>
<header>
  <section>
    <div><span dir="auto">İstanbul'un en iyi kahvesi ☕</span></div>
  </section>
</header>
<button aria-label="Email adresi">Email</button>
<a href="/mehmet_kahve/followers/"><span title="12,345">12.3K</span></a>
</body></html>`

const profileWithMailtoLink = `<html><body>
<div data-testid="user-bio"><span>El yapımı takılar</span></div>
<a href="mailto:siparis@example.com">sipariş ver</a>
<a href="/taki_atolyesi/followers/"><span>880</span></a>
</body></html>`

const profileWithoutSignals = `<html><body>
<div data-testid="user-bio"><span>sadece fotoğraflar</span></div>
<a href="/gezgin_ali/followers/"><span>412</span></a>
</body></html>`

func TestSignalsContactAffordanceButton(t *testing.T) {
	sig := SignalsFromHTML("mehmet_kahve", profileWithEmailButton)

	if sig.Handle != "mehmet_kahve" {
		t.Errorf("handle = %q", sig.Handle)
	}
	if !sig.HasContactAffordance {
		t.Error("expected contact affordance from aria-label button")
	}
}

func TestSignalsContactAffordanceLink(t *testing.T) {
	sig := SignalsFromHTML("taki_atolyesi", profileWithMailtoLink)

	if !sig.HasContactAffordance {
		t.Error("expected contact affordance from mailto link")
	}
	if sig.Biography != "El yapımı takılar" {
		t.Errorf("bio = %q", sig.Biography)
	}
	if sig.FollowerText != "880" {
		t.Errorf("follower text = %q", sig.FollowerText)
	}
}

func TestSignalsNoContactAffordance(t *testing.T) {
	sig := SignalsFromHTML("gezgin_ali", profileWithoutSignals)

	if sig.HasContactAffordance {
		t.Error("unexpected contact affordance")
	}
	if sig.FollowerText != "412" {
		t.Errorf("follower text = %q", sig.FollowerText)
	}
}

func TestSignalsFollowerTitlePreferred(t *testing.T) {
	// The title attribute carries the exact count; rendered text is rounded.
	sig := SignalsFromHTML("mehmet_kahve", profileWithEmailButton)

	if sig.FollowerText != "12,345" {
		t.Errorf("expected exact count from title attribute, got %q", sig.FollowerText)
	}
	if ParseFollowerCount(sig.FollowerText) != 12345 {
		t.Errorf("parsed %d from %q", ParseFollowerCount(sig.FollowerText), sig.FollowerText)
	}
}

func TestSignalsMalformedHTML(t *testing.T) {
	sig := SignalsFromHTML("kimse", "<not <valid <<html")

	if sig.Handle != "kimse" {
		t.Errorf("handle = %q", sig.Handle)
	}
	if sig.HasContactAffordance || sig.Biography != "" || sig.FollowerText != "" {
		t.Errorf("expected zero-valued signals, got %+v", sig)
	}
}
