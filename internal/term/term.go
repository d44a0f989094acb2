// Package term shows a display frame in a terminal.
//
// Every terminal cell shows two vertically stacked pixels using an upper half
// block, so a 32x64 frame takes 32 columns by 32 rows.
package term

import (
	"errors"
	"image"
	"image/color"
	"log"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var debug bool

func init() {
	debug = os.Getenv("FADER_DEBUG") != ""
}

// Errors
var (
	ErrSize   = errors.New("term: invalid display size")
	ErrClosed = errors.New("term: display is closed")
)

const upperHalfBlock = '▀'

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels, rounded up to an even number.
	Height int
}

// DefaultConfig is a 32x64 portrait LED matrix panel.
var DefaultConfig = Config{
	Width:  32,
	Height: 64,
}

// Display is a terminal backed display. Drawing goes to an in memory frame,
// which is copied to the terminal by Refresh.
//
// Display implements [sync.Locker], lock it while changing colors the frame
// is drawn with.
type Display struct {
	*image.RGBA
	sync.Mutex
	screen tcell.Screen
	on     bool
	closed bool
	quit   chan struct{}
	once   sync.Once
}

// Open a display on the controlling terminal.
func Open(config *Config) (*Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, config)
}

// New initializes screen and returns a display drawing on it.
func New(screen tcell.Screen, config *Config) (*Display, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	if config.Width <= 0 || config.Height <= 0 {
		return nil, ErrSize
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	d := &Display{
		RGBA:   image.NewRGBA(image.Rect(0, 0, config.Width, config.Height+config.Height%2)),
		screen: screen,
		on:     true,
		quit:   make(chan struct{}),
	}
	d.Clear()
	go d.poll()
	return d, nil
}

func (d *Display) poll() {
	for {
		switch ev := d.screen.PollEvent().(type) {
		case nil:
			// Screen finalized.
			return
		case *tcell.EventResize:
			if debug {
				w, h := ev.Size()
				log.Printf("term: resized to %dx%d cells", w, h)
			}
			d.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				d.once.Do(func() { close(d.quit) })
			}
		}
	}
}

// Quit is closed when the user presses Escape, q or Ctrl+C.
func (d *Display) Quit() <-chan struct{} {
	return d.quit
}

// Close restores the terminal.
func (d *Display) Close() error {
	d.Lock()
	defer d.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	d.screen.Fini()
	return nil
}

// Clear the frame to black.
func (d *Display) Clear() {
	d.Fill(color.Black)
}

// Fill the frame with a single color.
func (d *Display) Fill(c color.Color) {
	var (
		v    = color.RGBAModel.Convert(c).(color.RGBA)
		line = make([]byte, d.Rect.Dx()*4)
	)
	for i := 0; i < len(line); i += 4 {
		line[i+0] = v.R
		line[i+1] = v.G
		line[i+2] = v.B
		line[i+3] = v.A
	}
	for y := d.Rect.Min.Y; y < d.Rect.Max.Y; y++ {
		copy(d.Pix[d.PixOffset(d.Rect.Min.X, y):], line)
	}
}

// Show toggles the display on or off.
func (d *Display) Show(on bool) error {
	d.Lock()
	d.on = on
	d.Unlock()
	return d.Refresh()
}

// Refresh copies the frame to the terminal.
func (d *Display) Refresh() error {
	d.Lock()
	defer d.Unlock()
	if d.closed {
		return ErrClosed
	}

	var (
		b    = d.Bounds()
		w, h = d.screen.Size()
	)
	for row := 0; row < h && row*2 < b.Dy(); row++ {
		for col := 0; col < w && col < b.Dx(); col++ {
			var (
				x     = b.Min.X + col
				y     = b.Min.Y + row*2
				style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlack)
			)
			if d.on {
				style = tcell.StyleDefault.
					Foreground(cellColor(d.RGBAAt(x, y))).
					Background(cellColor(d.RGBAAt(x, y+1)))
			}
			d.screen.SetContent(col, row, upperHalfBlock, nil, style)
		}
	}
	d.screen.Show()
	return nil
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
