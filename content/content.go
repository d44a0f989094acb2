// Package content produces the readings shown on the display and writes them
// into the display's labels and icon.
package content

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
)

var debug bool

func init() {
	debug = os.Getenv("FADER_DEBUG") != ""
}

// DefaultIcons is the number of tiles in the default icon sheet.
const DefaultIcons = 17

// Reading is a single sample of the displayed values.
type Reading struct {
	Temperature float64 // in °C
	Humidity    float64 // in %
	Icon        int
}

// FormatTemperature rounds the temperature to whole degrees.
func (r Reading) FormatTemperature() string {
	return fmt.Sprintf("%.0f°", r.Temperature)
}

// FormatHumidity rounds the humidity to whole percents.
func (r Reading) FormatHumidity() string {
	return fmt.Sprintf("%.0f%%", r.Humidity)
}

func (r Reading) String() string {
	return fmt.Sprintf("%s %s icon %d", r.FormatTemperature(), r.FormatHumidity(), r.Icon)
}

// Sampler produces readings.
type Sampler interface {
	Sample() Reading
}

// Random produces random readings in a plausible range: temperatures from 50.0 up
// to 99.9, humidity from 20.0 up to 89.9, with one decimal.
type Random struct {
	rand  *rand.Rand
	icons int
}

// NewRandom returns a seeded random sampler picking icons in [0, icons).
func NewRandom(seed uint64, icons int) *Random {
	if icons < 1 {
		icons = 1
	}
	return &Random{
		rand:  rand.New(rand.NewPCG(seed, seed)),
		icons: icons,
	}
}

func (r *Random) Sample() Reading {
	return Reading{
		Temperature: float64(500+r.rand.IntN(500)) / 10,
		Humidity:    float64(200+r.rand.IntN(700)) / 10,
		Icon:        r.rand.IntN(r.icons),
	}
}

// TextSetter is a text element, such as a [draw.Label].
type TextSetter interface {
	SetText(string)
}

// TileSetter is an icon element, such as a [pixel.TileGrid].
type TileSetter interface {
	SetTile(int) error
}

// Panel writes readings to the display elements. Nil elements are skipped.
type Panel struct {
	Sampler     Sampler
	Temperature TextSetter
	Humidity    TextSetter
	Icon        TileSetter
	last        Reading
}

// Refresh samples a new reading and shows it.
func (p *Panel) Refresh() error {
	r := p.Sampler.Sample()
	if p.Icon != nil {
		if err := p.Icon.SetTile(r.Icon); err != nil {
			return fmt.Errorf("content: can't show icon %d: %w", r.Icon, err)
		}
	}
	if p.Temperature != nil {
		p.Temperature.SetText(r.FormatTemperature())
	}
	if p.Humidity != nil {
		p.Humidity.SetText(r.FormatHumidity())
	}
	p.last = r
	if debug {
		log.Printf("content: showing %s", r)
	}
	return nil
}

// Last returns the reading shown by the last successful refresh.
func (p *Panel) Last() Reading {
	return p.last
}
