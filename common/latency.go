package common

import (
	"sync"
	"time"
)

// DefaultResponseWindow is the number of completion calls averaged.
const DefaultResponseWindow = 10

// ResponseTimes keeps a moving window of completion call durations.
type ResponseTimes struct {
	mu      sync.Mutex
	samples []time.Duration
	next    int
	full    bool
}

func NewResponseTimes(window int) *ResponseTimes {
	if window <= 0 {
		window = DefaultResponseWindow
	}
	return &ResponseTimes{samples: make([]time.Duration, window)}
}

// Add records d, evicting the oldest sample once the window is full.
func (r *ResponseTimes) Add(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples[r.next] = d
	r.next = (r.next + 1) % len(r.samples)
	if r.next == 0 {
		r.full = true
	}
}

// Len returns how many samples are currently held.
func (r *ResponseTimes) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.len()
}

func (r *ResponseTimes) len() int {
	if r.full {
		return len(r.samples)
	}
	return r.next
}

// Average returns the mean of the held samples, or zero when empty.
func (r *ResponseTimes) Average() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.len()
	if n == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range r.samples[:n] {
		total += d
	}
	return total / time.Duration(n)
}
