// Package framebuffer provides access to the operating system's native framebuffer
//
// This requires framebuffer device support in the operating system. The framebuffer
// can be opened with the [Open] call. Drawing goes to an in memory frame, which
// Refresh converts to the pixel format of the device.
package framebuffer

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
	"sync"
)

// Errors
var (
	ErrNotSupported = errors.New("framebuffer: not supported")
	ErrFormat       = errors.New("framebuffer: unsupported pixel format")
	ErrClosed       = errors.New("framebuffer: display is closed")
)

// Format is the pixel layout of framebuffer memory, in native (little endian) byte order.
type Format int

// Supported formats.
const (
	UnknownFormat Format = iota
	RGB565               // 16-bit, red in the high bits
	BGR565               // 16-bit, blue in the high bits
	XRGB8888             // 32-bit, red in bits 16-23
	XBGR8888             // 32-bit, blue in bits 16-23
)

func (f Format) String() string {
	switch f {
	case RGB565:
		return "RGB565"
	case BGR565:
		return "BGR565"
	case XRGB8888:
		return "XRGB8888"
	case XBGR8888:
		return "XBGR8888"
	default:
		return "unknown"
	}
}

// BytesPerPixel is the size of a pixel in memory.
func (f Format) BytesPerPixel() int {
	switch f {
	case RGB565, BGR565:
		return 2
	case XRGB8888, XBGR8888:
		return 4
	default:
		return 0
	}
}

func (f Format) put(dst []byte, c color.RGBA) {
	switch f {
	case RGB565:
		binary.LittleEndian.PutUint16(dst, uint16(c.R>>3)<<11|uint16(c.G>>2)<<5|uint16(c.B>>3))
	case BGR565:
		binary.LittleEndian.PutUint16(dst, uint16(c.B>>3)<<11|uint16(c.G>>2)<<5|uint16(c.R>>3))
	case XRGB8888:
		binary.LittleEndian.PutUint32(dst, uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B))
	case XBGR8888:
		binary.LittleEndian.PutUint32(dst, uint32(c.B)<<16|uint32(c.G)<<8|uint32(c.R))
	}
}

// bitField for the color
type bitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// varScreenInfo contains device independent changeable information about a frame buffer device and a specific video mode.
type varScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha bitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

func parseFormat(info *varScreenInfo) (Format, error) {
	if info == nil {
		return UnknownFormat, errors.New("framebuffer: invalid screen info")
	}

	switch info.BitsPerPixel {
	case 16:
		switch {
		case info.Red.Offset == 11 && info.Red.Length == 5 &&
			info.Green.Offset == 5 && info.Green.Length == 6 &&
			info.Blue.Offset == 0 && info.Blue.Length == 5:
			return RGB565, nil

		case info.Blue.Offset == 11 && info.Blue.Length == 5 &&
			info.Green.Offset == 5 && info.Green.Length == 6 &&
			info.Red.Offset == 0 && info.Red.Length == 5:
			return BGR565, nil
		}

	case 32:
		switch {
		case info.Red.Offset == 16 && info.Red.Length == 8 &&
			info.Green.Offset == 8 && info.Green.Length == 8 &&
			info.Blue.Offset == 0 && info.Blue.Length == 8:
			return XRGB8888, nil

		case info.Blue.Offset == 16 && info.Blue.Length == 8 &&
			info.Green.Offset == 8 && info.Green.Length == 8 &&
			info.Red.Offset == 0 && info.Red.Length == 8:
			return XBGR8888, nil
		}
	}

	return UnknownFormat, ErrFormat
}

// Display is a framebuffer backed display.
//
// Display implements [sync.Locker], lock it while changing colors the frame
// is drawn with.
type Display struct {
	*image.RGBA
	sync.Mutex
	format Format
	mem    []byte
	stride int
	dev    io.Closer
	closed bool
}

func newDisplay(mem []byte, w, h, stride int, format Format, dev io.Closer) (*Display, error) {
	if format.BytesPerPixel() == 0 {
		return nil, ErrFormat
	}
	if w <= 0 || h <= 0 || stride < w*format.BytesPerPixel() || len(mem) < stride*h {
		return nil, errors.New("framebuffer: memory too small for the screen size")
	}
	d := &Display{
		RGBA:   image.NewRGBA(image.Rect(0, 0, w, h)),
		format: format,
		mem:    mem,
		stride: stride,
		dev:    dev,
	}
	d.Clear()
	return d, nil
}

// Format of the framebuffer memory.
func (d *Display) Format() Format {
	return d.format
}

// Clear the frame to black.
func (d *Display) Clear() {
	for i := 0; i < len(d.Pix); i += 4 {
		d.Pix[i+0] = 0
		d.Pix[i+1] = 0
		d.Pix[i+2] = 0
		d.Pix[i+3] = 0xff
	}
}

// Refresh copies the frame to the framebuffer.
func (d *Display) Refresh() error {
	d.Lock()
	defer d.Unlock()
	if d.closed {
		return ErrClosed
	}

	var (
		b    = d.Bounds()
		size = d.format.BytesPerPixel()
	)
	for y := 0; y < b.Dy(); y++ {
		line := d.mem[y*d.stride:]
		for x := 0; x < b.Dx(); x++ {
			d.format.put(line[x*size:], d.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return nil
}

// Close the framebuffer device.
func (d *Display) Close() error {
	d.Lock()
	defer d.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	if d.dev == nil {
		return nil
	}
	return d.dev.Close()
}
