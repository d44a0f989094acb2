// Package fader scales color palettes by a brightness factor and keeps display
// color containers in sync with a brightness input.
//
// A [Fader] owns an immutable source [pixel.ColorSet] and derives a faded set from it,
// with optional gamma correction and peak normalization. A [Scheduler] drives one or
// more faders and an opaque content refresh from a single cooperative loop, each on
// its own cadence.
package fader

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/BeatGlow/fader/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("FADER_DEBUG") != ""
}

// Errors
var (
	ErrInvalidBrightness = errors.New("fader: brightness out of range [0, 1]")
	ErrInvalidGamma      = errors.New("fader: invalid gamma configuration")
	ErrDegenerateSource  = errors.New("fader: can't normalize a color set without any lit channel")
	ErrLengthMismatch    = errors.New("fader: target length differs from palette length")
)

// Config is the fader configuration. Gamma and Normalize are fixed for the lifetime of a [Fader].
type Config struct {
	// Brightness is the initial brightness, in [0, 1].
	Brightness float64

	// Gamma is the gamma correction exponent. Zero disables gamma correction, as does 1.
	// Channels are corrected with 255*(v/255)^(1/Gamma), so values above 1 lift the
	// shadows and keep dark colors visible at low brightness.
	Gamma float64

	// Normalize scales the set so its brightest channel reaches 255 at full brightness.
	// Requires a non-zero Gamma.
	Normalize bool
}

// DefaultConfig is full brightness without gamma correction or normalization.
var DefaultConfig = Config{
	Brightness: 1.0,
}

func checkBrightness(brightness float64) error {
	if math.IsNaN(brightness) || brightness < 0 || brightness > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidBrightness, brightness)
	}
	return nil
}

func checkGamma(gamma float64, normalize bool) error {
	switch {
	case math.IsNaN(gamma), math.IsInf(gamma, 0), gamma < 0:
		return fmt.Errorf("%w: gamma %g must be positive", ErrInvalidGamma, gamma)
	case normalize && gamma == 0:
		return fmt.Errorf("%w: normalize requires a gamma value", ErrInvalidGamma)
	}
	return nil
}

// Compute returns the faded copy of src. The source is not modified and the result is
// index aligned with it. An empty source yields an empty result.
func Compute(src pixel.ColorSet, brightness, gamma float64, normalize bool) (pixel.ColorSet, error) {
	if err := checkBrightness(brightness); err != nil {
		return nil, err
	}
	if err := checkGamma(gamma, normalize); err != nil {
		return nil, err
	}
	return newGammaTable(gamma).fade(src, brightness, normalize)
}

// gammaTable maps a channel value to its gamma corrected intensity.
type gammaTable [256]float64

func newGammaTable(gamma float64) *gammaTable {
	t := new(gammaTable)
	for i := range t {
		if gamma == 0 || gamma == 1 {
			t[i] = float64(i)
		} else {
			t[i] = 255 * math.Pow(float64(i)/255, 1/gamma)
		}
	}
	return t
}

func (t *gammaTable) fade(src pixel.ColorSet, brightness float64, normalize bool) (pixel.ColorSet, error) {
	factor := 1.0
	if normalize && len(src) > 0 {
		peak := t[src.MaxChannel()]
		if peak == 0 {
			return nil, ErrDegenerateSource
		}
		factor = 255 / peak
	}

	out := make(pixel.ColorSet, len(src))
	for i, c := range src {
		r, g, b := c.Channels()
		out[i] = pixel.RGB(
			channel(t[r]*factor*brightness),
			channel(t[g]*factor*brightness),
			channel(t[b]*factor*brightness),
		)
	}
	return out, nil
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(math.Round(v))
	}
}

// Fader derives a faded palette from a source color set.
//
// The faded palette is cached and only recomputed after the brightness changes.
type Fader struct {
	source  pixel.ColorSet
	config  Config
	table   *gammaTable
	palette pixel.ColorSet
}

// New creates a fader for a copy of source. A nil config uses [DefaultConfig].
func New(source pixel.ColorSet, config *Config) (*Fader, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	if err := checkBrightness(config.Brightness); err != nil {
		return nil, err
	}
	if err := checkGamma(config.Gamma, config.Normalize); err != nil {
		return nil, err
	}

	f := &Fader{
		source: source.Clone(),
		config: *config,
		table:  newGammaTable(config.Gamma),
	}
	if err := f.update(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Fader) String() string {
	return fmt.Sprintf("fader of %d colors at brightness %.2f (gamma %g, normalize %t)",
		len(f.source), f.config.Brightness, f.config.Gamma, f.config.Normalize)
}

func (f *Fader) update() (err error) {
	f.palette, err = f.table.fade(f.source, f.config.Brightness, f.config.Normalize)
	return
}

// Len is the number of colors in the source and faded palettes.
func (f *Fader) Len() int {
	return len(f.source)
}

// Source returns a copy of the source colors.
func (f *Fader) Source() pixel.ColorSet {
	return f.source.Clone()
}

// Brightness returns the current brightness.
func (f *Fader) Brightness() float64 {
	return f.config.Brightness
}

// Gamma returns the gamma exponent, zero if disabled.
func (f *Fader) Gamma() float64 {
	return f.config.Gamma
}

// Normalize reports if the palette is normalized.
func (f *Fader) Normalize() bool {
	return f.config.Normalize
}

// SetBrightness changes the brightness. Values outside [0, 1] are rejected.
func (f *Fader) SetBrightness(brightness float64) error {
	if err := checkBrightness(brightness); err != nil {
		return err
	}
	if brightness == f.config.Brightness {
		return nil
	}
	f.config.Brightness = brightness
	// The source was validated by New, so fading can't fail anymore.
	return f.update()
}

// Palette returns a copy of the faded colors.
func (f *Fader) Palette() pixel.ColorSet {
	return f.palette.Clone()
}
