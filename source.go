package fader

import "time"

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system time, including its monotonic clock reading.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// BrightnessSource supplies the current brightness, in [0, 1]. Mapping raw input
// values into that range is up to the source. Read must not block.
type BrightnessSource interface {
	Read() (float64, error)
}

// BrightnessFunc is an adapter to use an ordinary function as a [BrightnessSource].
type BrightnessFunc func() (float64, error)

func (f BrightnessFunc) Read() (float64, error) {
	return f()
}

// ContentSource refreshes the semantic content of the display (readings, icons).
// What it writes, and where, is opaque to the scheduler.
type ContentSource interface {
	Refresh() error
}

// ContentFunc is an adapter to use an ordinary function as a [ContentSource].
type ContentFunc func() error

func (f ContentFunc) Refresh() error {
	return f()
}
