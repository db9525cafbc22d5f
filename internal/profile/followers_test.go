package profile

import "testing"

func TestParseFollowerCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"900", 900},
		{"12.3K", 12300},
		{"1.2M", 1200000},
		{"2B", 2000000000},
		{"1,234", 1234},
		{"15.7k", 15700},
		{"3.4m", 3400000},
		{"54 followers", 54},
		{"1,234,567", 1234567},
		{"", 0},
		{"followers", 0},
		{"N/A", 0},
	}

	for _, tt := range tests {
		if got := ParseFollowerCount(tt.text); got != tt.want {
			t.Errorf("ParseFollowerCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestParseFollowerCountRounding(t *testing.T) {
	// 1.2 * 1e6 is not exactly representable; truncation would give 1199999.
	if got := ParseFollowerCount("1.2M"); got != 1200000 {
		t.Errorf("expected rounded 1200000, got %d", got)
	}
}
