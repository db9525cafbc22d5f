package profile

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var followerPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*([KMB])?`)

// ParseFollowerCount converts rendered follower text to a count. Thousands
// separators are stripped, then an optional magnitude suffix is applied
// (K=1e3, M=1e6, B=1e9). Anything unparseable yields 0.
func ParseFollowerCount(text string) int {
	if text == "" {
		return 0
	}

	cleaned := strings.ReplaceAll(text, ",", "")
	m := followerPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return 0
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	switch strings.ToUpper(m[2]) {
	case "K":
		n *= 1e3
	case "M":
		n *= 1e6
	case "B":
		n *= 1e9
	}

	return int(math.Round(n))
}
