package profiling

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Per-frame CPU timings. Everything here runs on the frame thread, so no locking.

var frameTotals = make(map[string]time.Duration)

// Track returns a stop function that adds the elapsed time to name's total for this frame.
// Usage: defer profiling.Track("scene.Shade")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		frameTotals[name] += time.Since(start)
	}
}

// ResetFrame clears the per-frame totals. Hosts call it at the start of each frame.
func ResetFrame() {
	clear(frameTotals)
}

// Total returns the time recorded under name this frame.
func Total(name string) time.Duration {
	return frameTotals[name]
}

// SumWithPrefix adds up every total whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	var sum time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest totals of the current frame, largest first.
// Example: "scene.Shade:0.4ms, glhost.present:2.1ms"
func TopN(n int) string {
	type entry struct {
		name string
		dur  time.Duration
	}
	list := make([]entry, 0, len(frameTotals))
	for k, v := range frameTotals {
		list = append(list, entry{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		ms := float64(e.dur.Microseconds()) / 1000
		parts = append(parts, e.name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms")
	}
	return strings.Join(parts, ", ")
}
