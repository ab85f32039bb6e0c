package loop

import "time"

// samples must be a power of two.
const samples = 32

// A Timer keeps a rolling average of the last 32 durations added to it.
//
type Timer struct {
	times [samples]time.Duration
	index int
	n     int
}

// Add records a duration.
//
func (t *Timer) Add(dt time.Duration) {
	t.times[t.index] = dt
	t.index = (t.index + 1) & (samples - 1)
	if t.n < samples {
		t.n++
	}
}

// Time runs f and records its duration.
//
func (t *Timer) Time(f func()) {
	start := time.Now()
	f()
	t.Add(time.Since(start))
}

// Average returns the average of the recorded durations, or 0 if none.
//
func (t *Timer) Average() time.Duration {
	if t.n == 0 {
		return 0
	}
	var avg time.Duration
	for _, dt := range t.times[:t.n] {
		avg += dt
	}
	return avg / time.Duration(t.n)
}

// Count returns the number of recorded durations, up to 32.
//
func (t *Timer) Count() int { return t.n }
