// Package sensor contains brightness sources for the fader.
package sensor

import (
	"errors"
	"fmt"
	"math"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
)

// Errors
var (
	ErrRange = errors.New("sensor: invalid input range")
)

// MapRange maps x from the input range to the output range, clamping the result
// to the output range. A zero width input range maps to the middle of the output.
func MapRange(x, inMin, inMax, outMin, outMax float64) float64 {
	var (
		inRange = inMax - inMin
		inDelta = x - inMin
		mapped  float64
	)
	switch {
	case inRange != 0:
		mapped = inDelta / inRange
	case inDelta != 0:
		mapped = inDelta
	default:
		mapped = 0.5
	}
	mapped = mapped*(outMax-outMin) + outMin

	if outMin <= outMax {
		return math.Max(math.Min(mapped, outMax), outMin)
	}
	return math.Min(math.Max(mapped, outMax), outMin)
}

// Fixed is a constant brightness.
type Fixed float64

func (f Fixed) Read() (float64, error) {
	return float64(f), nil
}

// ADCConfig maps the voltage of an analog input to a brightness.
type ADCConfig struct {
	// Min is the voltage mapped to MinBrightness.
	Min physic.ElectricPotential

	// Max is the voltage mapped to MaxBrightness.
	Max physic.ElectricPotential

	// MinBrightness keeps the display from going completely dark.
	MinBrightness float64

	// MaxBrightness is the brightness at Max.
	MaxBrightness float64
}

// DefaultADCConfig matches a 10kΩ potentiometer between ground and 3.3V with some
// dead band on either end.
var DefaultADCConfig = ADCConfig{
	Min:           15 * physic.MilliVolt,
	Max:           2720 * physic.MilliVolt,
	MinBrightness: 0.05,
	MaxBrightness: 1.0,
}

// ADC reads brightness from an analog input, such as a fader potentiometer.
//
// Readings are quantized to whole percents, to avoid refreshing the palette
// for input noise.
type ADC struct {
	pin    analog.PinADC
	config ADCConfig
}

// NewADC wraps an analog pin. A nil config uses [DefaultADCConfig].
func NewADC(pin analog.PinADC, config *ADCConfig) (*ADC, error) {
	if config == nil {
		config = new(ADCConfig)
		*config = DefaultADCConfig
	}
	if config.Min >= config.Max {
		return nil, fmt.Errorf("%w: %s to %s", ErrRange, config.Min, config.Max)
	}
	if config.MinBrightness < 0 || config.MaxBrightness > 1 || config.MinBrightness > config.MaxBrightness {
		return nil, fmt.Errorf("%w: brightness %g to %g", ErrRange, config.MinBrightness, config.MaxBrightness)
	}
	return &ADC{
		pin:    pin,
		config: *config,
	}, nil
}

func (a *ADC) String() string {
	return fmt.Sprintf("ADC %s", a.pin)
}

// Read the brightness.
func (a *ADC) Read() (float64, error) {
	sample, err := a.pin.Read()
	if err != nil {
		return 0, err
	}
	brightness := MapRange(float64(sample.V),
		float64(a.config.Min), float64(a.config.Max),
		a.config.MinBrightness, a.config.MaxBrightness)
	return math.Max(math.Floor(brightness*100)/100, a.config.MinBrightness), nil
}

// Halt the underlying pin.
func (a *ADC) Halt() error {
	return a.pin.Halt()
}
