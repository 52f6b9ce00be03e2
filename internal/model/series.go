package model

import "fmt"

// PriceSeries is an ordered run of closing prices, oldest first.
type PriceSeries []float64

// Validate checks that the series is non-empty and strictly positive.
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty price series", ErrInvalidParameter)
	}
	for i, p := range s {
		if !(p > 0) {
			return fmt.Errorf("%w: price at step %d is %v", ErrInvalidParameter, i, p)
		}
	}
	return nil
}

// Last returns the most recent close.
func (s PriceSeries) Last() float64 {
	return s[len(s)-1]
}

// Tail returns a copy of the last n closes (or all of them if shorter).
func (s PriceSeries) Tail(n int) []float64 {
	start := len(s) - n
	if start < 0 {
		start = 0
	}
	out := make([]float64, len(s)-start)
	copy(out, s[start:])
	return out
}

// Optional is an indicator reading that may be absent because the
// series was too short to compute it.
type Optional struct {
	value float64
	ok    bool
}

// Present wraps a computed value.
func Present(v float64) Optional {
	return Optional{value: v, ok: true}
}

// Absent is the "not enough data" reading.
func Absent() Optional {
	return Optional{}
}

// Get returns the value and whether it is present.
func (o Optional) Get() (float64, bool) {
	return o.value, o.ok
}

// IsPresent reports whether a value was computed.
func (o Optional) IsPresent() bool {
	return o.ok
}

// OrElse returns the value or def when absent.
func (o Optional) OrElse(def float64) float64 {
	if !o.ok {
		return def
	}
	return o.value
}

func (o Optional) String() string {
	if !o.ok {
		return "n/a"
	}
	return fmt.Sprintf("%g", o.value)
}
