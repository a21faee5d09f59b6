package profiling

import "time"

// FPSCounter counts presented frames and publishes the count once per second.
type FPSCounter struct {
	windowStart time.Time
	frames      int
	fps         int
}

func NewFPSCounter() *FPSCounter {
	return &FPSCounter{}
}

// Tick records one presented frame at now.
func (c *FPSCounter) Tick(now time.Time) {
	if c.windowStart.IsZero() {
		c.windowStart = now
		return
	}
	c.frames++
	if elapsed := now.Sub(c.windowStart); elapsed >= time.Second {
		c.fps = int(float64(c.frames) / elapsed.Seconds())
		c.frames = 0
		c.windowStart = now
	}
}

// FPS is the rate measured over the last full second.
func (c *FPSCounter) FPS() int {
	return c.fps
}
