package profiling

import (
	"testing"
	"time"
)

func TestTrackAndTopN(t *testing.T) {
	ResetFrame()
	frameTotals["scene.Shade"] = 2 * time.Millisecond
	frameTotals["scene.Draw"] = 5 * time.Millisecond
	frameTotals["host.present"] = 1 * time.Millisecond

	got := TopN(2)
	if got != "scene.Draw:5.0ms, scene.Shade:2.0ms" {
		t.Errorf("TopN(2) = %q", got)
	}
	if s := SumWithPrefix("scene."); s != 7*time.Millisecond {
		t.Errorf("SumWithPrefix = %v, want 7ms", s)
	}

	stop := Track("host.present")
	stop()
	if Total("host.present") < time.Millisecond {
		t.Error("Track did not add to the existing total")
	}

	ResetFrame()
	if TopN(5) != "" {
		t.Error("ResetFrame left totals behind")
	}
}

func TestFPSCounter(t *testing.T) {
	c := NewFPSCounter()
	start := time.Unix(100, 0)
	for i := 0; i <= 60; i++ {
		c.Tick(start.Add(time.Duration(i) * time.Second / 60))
	}
	if c.FPS() != 60 {
		t.Errorf("FPS = %d, want 60", c.FPS())
	}
}
