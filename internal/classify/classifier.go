// Package classify turns raw profile signals into a business/non-business
// verdict. The heuristics tolerate false positives and negatives;
// determinism for identical input is the only contract.
package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/types"
)

// Classifier applies an ordered OR of independent signals.
type Classifier struct {
	minBioLength int
	keywords     []string
}

// New builds a Classifier from configuration. The keyword lexicon is
// lowercased once here.
func New(cfg config.ClassifierConfig) *Classifier {
	keywords := make([]string, 0, len(cfg.Keywords))
	for _, kw := range cfg.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return &Classifier{
		minBioLength: cfg.MinBioLength,
		keywords:     keywords,
	}
}

// Classify reports whether the signals look like a business account. Signals
// are evaluated in order; any hit short-circuits to true:
//  1. a contact affordance on the profile,
//  2. a biography longer than the configured minimum,
//  3. a business keyword in the biography.
func (c *Classifier) Classify(sig types.RawProfileSignals) bool {
	if sig.HasContactAffordance {
		return true
	}

	if utf8.RuneCountInString(sig.Biography) > c.minBioLength {
		return true
	}

	bio := strings.ToLower(sig.Biography)
	for _, kw := range c.keywords {
		if strings.Contains(bio, kw) {
			return true
		}
	}

	return false
}
