package classify

import (
	"strings"
	"testing"

	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/types"
)

func newTestClassifier() *Classifier {
	return New(config.DefaultConfig().Classifier)
}

func TestClassifyContactAffordance(t *testing.T) {
	c := newTestClassifier()

	sig := types.RawProfileSignals{
		Handle:               "mehmet_kahve",
		HasContactAffordance: true,
	}
	if !c.Classify(sig) {
		t.Error("contact affordance alone should classify as business")
	}
}

func TestClassifyBioLength(t *testing.T) {
	c := New(config.ClassifierConfig{MinBioLength: 30})

	long := types.RawProfileSignals{Biography: strings.Repeat("x", 31)}
	if !c.Classify(long) {
		t.Error("31-char bio should classify as business")
	}

	exact := types.RawProfileSignals{Biography: strings.Repeat("x", 30)}
	if c.Classify(exact) {
		t.Error("30-char bio is not over the threshold")
	}
}

func TestClassifyBioLengthCountsRunes(t *testing.T) {
	c := New(config.ClassifierConfig{MinBioLength: 30})

	// 30 runes but far more bytes; must not classify on length.
	sig := types.RawProfileSignals{Biography: strings.Repeat("ş", 30)}
	if c.Classify(sig) {
		t.Error("bio length must be measured in runes, not bytes")
	}
}

func TestClassifyKeyword(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		bio  string
		want bool
	}{
		{"Kadıköy'de restoran", true},
		{"Butik işletme", true},
		{"CAFE downtown", true},
		{"doğa yürüyüşleri", false},
		{"", false},
	}

	for _, tt := range tests {
		sig := types.RawProfileSignals{Biography: tt.bio}
		if got := c.Classify(sig); got != tt.want {
			t.Errorf("Classify(bio=%q) = %v, want %v", tt.bio, got, tt.want)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := newTestClassifier()
	sig := types.RawProfileSignals{
		Handle:    "taki_atolyesi",
		Biography: "El yapımı takılar, sipariş DM",
	}

	first := c.Classify(sig)
	for i := 0; i < 10; i++ {
		if c.Classify(sig) != first {
			t.Fatal("identical signals must classify identically")
		}
	}
}

func TestClassifyEmptySignals(t *testing.T) {
	c := newTestClassifier()
	if c.Classify(types.RawProfileSignals{Handle: "bos_profil"}) {
		t.Error("empty signals must not classify as business")
	}
}
