package rules

import "testing"

func TestApplyConwayRules(t *testing.T) {
	for neighbors := 0; neighbors <= 8; neighbors++ {
		wantLive := neighbors == 2 || neighbors == 3
		if got := ApplyConwayRules(neighbors, true); got != wantLive {
			t.Errorf("live cell with %d neighbors: got %v, want %v", neighbors, got, wantLive)
		}

		wantDead := neighbors == 3
		if got := ApplyConwayRules(neighbors, false); got != wantDead {
			t.Errorf("dead cell with %d neighbors: got %v, want %v", neighbors, got, wantDead)
		}
	}
}
