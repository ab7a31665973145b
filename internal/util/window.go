package util

import "github.com/asecurityteam/rolling"

// SampleWindow is a fixed-capacity rolling window over the most recent
// samples. Unlike a bare rolling.PointPolicy, whose buckets start out
// as zeros, its average only covers the samples actually appended.
type SampleWindow struct {
	policy   *rolling.PointPolicy
	capacity int
	count    int
}

func CreateSampleWindow(capacity int) *SampleWindow {
	return &SampleWindow{
		policy:   rolling.NewPointPolicy(rolling.NewWindow(capacity)),
		capacity: capacity,
	}
}

// Append adds a sample, evicting the oldest one once the window is full.
func (w *SampleWindow) Append(value float64) {
	w.policy.Append(value)
	if w.count < w.capacity {
		w.count++
	}
}

// Avg returns the arithmetic mean of the samples currently present,
// or 0 if the window is empty.
func (w *SampleWindow) Avg() float64 {
	if w.count == 0 {
		return 0
	}
	return w.policy.Reduce(rolling.Sum) / float64(w.count)
}

// Count returns the number of samples currently present.
func (w *SampleWindow) Count() int {
	return w.count
}
