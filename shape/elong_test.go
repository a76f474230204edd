package shape

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestStretchable(t *testing.T) {
	tests := []struct {
		name string
		text string
		idx  int
		want bool
	}{
		// In "بسم": beh and seen join forward, final meem does not.
		{"medial joint", "بسم", 0, true},
		{"second joint", "بسم", 1, true},
		{"final letter", "بسم", 2, false},
		// Alef is right-joining only: never a stretch point.
		{"alef", "الم", 0, false},
		{"lam before meem", "الم", 1, true},
		// A joint may not cross a word boundary.
		{"before space", "بس م", 1, false},
		{"space itself", "بس م", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stretchable([]rune(tt.text), tt.idx); got != tt.want {
				t.Errorf("stretchable(%q, %d) = %v, want %v", tt.text, tt.idx, got, tt.want)
			}
		})
	}
}

func TestStretchableSkipsCombiningMarks(t *testing.T) {
	// beh + fatha (combining) + meem: the mark does not break the joint.
	text := []rune("بَم")
	if !stretchable(text, 0) {
		t.Error("joint through a combining mark not detected")
	}
}

func TestElongAllowance(t *testing.T) {
	text := []rune("بسم")

	adv := fixed.I(10)
	if got, want := elongAllowance(text, 0, adv), adv*elongFactor; got != want {
		t.Errorf("allowance = %v, want %v", got, want)
	}

	// Rigid position yields zero.
	if got := elongAllowance(text, 2, adv); got != 0 {
		t.Errorf("final letter allowance = %v, want 0", got)
	}

	// Absolute cap.
	huge := fixed.I(2000)
	if got := elongAllowance(text, 0, huge); got != maxElongAbs {
		t.Errorf("capped allowance = %v, want %v", got, maxElongAbs)
	}

	// Out-of-range index is defensive, not a panic.
	if got := elongAllowance(text, 99, adv); got != 0 {
		t.Errorf("out-of-range allowance = %v, want 0", got)
	}
}
