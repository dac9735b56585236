package util

import "github.com/asecurityteam/rolling"

// History keeps the last N values appended to it.
type History struct {
	policy *rolling.PointPolicy
	size   int
	count  int
}

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

func NewHistory(size int) *History {
	return &History{
		policy: CreateRollingWindow(size),
		size:   size,
	}
}

func (h *History) Append(value float64) {
	h.policy.Append(value)
	h.count++
}

// Size returns the maximum number of values held.
func (h *History) Size() int {
	return h.size
}

// Len returns the number of values currently held.
func (h *History) Len() int {
	if h.count < h.size {
		return h.count
	}
	return h.size
}

// Values returns the held values, oldest first.
func (h *History) Values() []float64 {
	var buckets []float64
	h.policy.Reduce(func(w rolling.Window) float64 {
		for _, bucket := range w {
			if len(bucket) > 0 {
				buckets = append(buckets, bucket[0])
			} else {
				buckets = append(buckets, 0)
			}
		}
		return 0
	})

	if h.count < h.size {
		return buckets[:h.count]
	}
	offset := h.count % h.size
	result := make([]float64, 0, h.size)
	result = append(result, buckets[offset:]...)
	return append(result, buckets[:offset]...)
}

// Last returns the most recently appended value.
func (h *History) Last() (float64, bool) {
	values := h.Values()
	if len(values) <= 0 {
		return 0, false
	}
	return values[len(values)-1], true
}
