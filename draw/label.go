package draw

import (
	"fmt"
	"image"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/BeatGlow/fader/pixel"
)

// Label palette indices.
const (
	LabelBackground = iota
	LabelText
)

// Anchor is a relative point within a bounding box, {0, 0} being the top
// left corner and {1, 1} the bottom right corner.
type Anchor struct {
	X, Y float64
}

var (
	TopLeft = Anchor{0, 0}
	Center  = Anchor{0.5, 0.5}
)

// DefaultFont is the Go regular font.
var DefaultFont *truetype.Font

func init() {
	var err error
	if DefaultFont, err = truetype.Parse(goregular.TTF); err != nil {
		panic(err)
	}
}

// LabelConfig is the label font.
type LabelConfig struct {
	// Font to render with, nil selects DefaultFont.
	Font *truetype.Font

	// Size in points, at 72 DPI a point is a pixel.
	Size float64
}

var DefaultLabelConfig = LabelConfig{
	Size: 12,
}

// Label is a line of text. The text color and an optional background color
// live in a two entry palette; the background starts out transparent.
//
// The anchor point of the text's bounding box is placed at Position.
type Label struct {
	Position image.Point
	Anchor   Anchor
	text     string
	font     *truetype.Font
	size     float64
	face     font.Face
	palette  *pixel.Palette
}

// NewLabel returns a label in color c.
func NewLabel(text string, c pixel.Color, config *LabelConfig) *Label {
	if config == nil {
		config = new(LabelConfig)
		*config = DefaultLabelConfig
	}
	f := config.Font
	if f == nil {
		f = DefaultFont
	}
	l := &Label{
		text: text,
		font: f,
		size: config.Size,
		face: truetype.NewFace(f, &truetype.Options{
			Size:    config.Size,
			DPI:     72,
			Hinting: font.HintingNone,
		}),
		palette: pixel.PaletteOf(pixel.Black, c),
	}
	l.palette.MakeTransparent(LabelBackground)
	return l
}

func (l *Label) String() string {
	return fmt.Sprintf("label %q at %s", l.text, l.Position)
}

// Text returns the current text.
func (l *Label) Text() string { return l.text }

// SetText replaces the text.
func (l *Label) SetText(text string) { l.text = text }

// Palette returns the palette holding the background and text colors.
func (l *Label) Palette() *pixel.Palette { return l.palette }

func (l *Label) Len() int { return l.palette.Len() }

func (l *Label) At(i int) pixel.Color { return l.palette.At(i) }

func (l *Label) Set(i int, c pixel.Color) { l.palette.Set(i, c) }

// Bounds is the bounding box of the text, from ascent to descent.
func (l *Label) Bounds() image.Rectangle {
	var (
		m = l.face.Metrics()
		w = font.MeasureString(l.face, l.text).Ceil()
		h = (m.Ascent + m.Descent).Ceil()
		x = l.Position.X - int(math.Round(l.Anchor.X*float64(w)))
		y = l.Position.Y - int(math.Round(l.Anchor.Y*float64(h)))
	)
	return image.Rect(x, y, x+w, y+h)
}

func (l *Label) Draw(dst Image) {
	r := l.Bounds()
	if !l.palette.IsTransparent(LabelBackground) {
		Box(dst, r, l.palette.At(LabelBackground))
	}
	if l.text == "" || l.palette.IsTransparent(LabelText) {
		return
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(l.font)
	ctx.SetFontSize(l.size)
	ctx.SetHinting(font.HintingNone)
	ctx.SetClip(r.Intersect(dst.Bounds()))
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(l.palette.At(LabelText)))

	// The font is always set, so drawing can not fail.
	_, _ = ctx.DrawString(l.text, freetype.Pt(r.Min.X, r.Min.Y+l.face.Metrics().Ascent.Ceil()))
}
