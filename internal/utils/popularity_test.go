package utils

import "testing"

func TestCalculatePopularity(t *testing.T) {
	if got := CalculatePopularity(0, 0, 0); got != 0 {
		t.Errorf("no activity should score 0, got %d", got)
	}

	low := CalculatePopularity(1, 0, 0)
	high := CalculatePopularity(10, 5, 100)
	if high <= low {
		t.Errorf("more activity should score higher: %d <= %d", high, low)
	}

	if got := CalculatePopularity(-50, 0, 0); got != 0 {
		t.Errorf("heavily downvoted snippets bottom out at 0, got %d", got)
	}
}

func TestCalculatePopularityDeterministic(t *testing.T) {
	a := CalculatePopularity(3, 2, 40)
	b := CalculatePopularity(3, 2, 40)
	if a != b {
		t.Errorf("popularity should be deterministic: %d != %d", a, b)
	}
}
