package mathx

import (
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	for _, c := range []struct{ v, lo, hi, want int }{
		{5, 8, 256, 8},
		{300, 8, 256, 256},
		{64, 8, 256, 64},
		{64, 256, 8, 64}, // swapped bounds
	} {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
	if got := Clamp(-time.Second, 0, 2*time.Second); got != 0 {
		t.Errorf("duration clamp = %v", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(uint32(9), 2) != 2 {
		t.Fatal("Min")
	}
	if Max(3, 7) != 7 || Max(time.Millisecond, 0) != time.Millisecond {
		t.Fatal("Max")
	}
}
