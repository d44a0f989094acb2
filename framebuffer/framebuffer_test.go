package framebuffer

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
)

type testCloser struct {
	closed int
}

func (c *testCloser) Close() error {
	c.closed++
	return nil
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		Name    string
		BPP     uint32
		R, G, B bitField
		Want    Format
	}{
		{"rgb565", 16, bitField{Offset: 11, Length: 5}, bitField{Offset: 5, Length: 6}, bitField{Offset: 0, Length: 5}, RGB565},
		{"bgr565", 16, bitField{Offset: 0, Length: 5}, bitField{Offset: 5, Length: 6}, bitField{Offset: 11, Length: 5}, BGR565},
		{"xrgb8888", 32, bitField{Offset: 16, Length: 8}, bitField{Offset: 8, Length: 8}, bitField{Offset: 0, Length: 8}, XRGB8888},
		{"xbgr8888", 32, bitField{Offset: 0, Length: 8}, bitField{Offset: 8, Length: 8}, bitField{Offset: 16, Length: 8}, XBGR8888},
		{"rgb555", 16, bitField{Offset: 10, Length: 5}, bitField{Offset: 5, Length: 5}, bitField{Offset: 0, Length: 5}, UnknownFormat},
		{"8-bit", 8, bitField{}, bitField{}, bitField{}, UnknownFormat},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			v, err := parseFormat(&varScreenInfo{
				BitsPerPixel: test.BPP,
				Red:          test.R,
				Green:        test.G,
				Blue:         test.B,
			})
			if test.Want == UnknownFormat {
				if !errors.Is(err, ErrFormat) {
					it.Errorf("expected ErrFormat, got %v", err)
				}
				return
			}
			if err != nil {
				it.Fatal(err)
			}
			if v != test.Want {
				it.Errorf("expected %s, got %s", test.Want, v)
			}
		})
	}

	if _, err := parseFormat(nil); err == nil {
		t.Error("expected error for nil screen info")
	}
}

func TestRefresh(t *testing.T) {
	tests := []struct {
		Format Format
		Want   []byte
	}{
		{RGB565, []byte{0x00, 0xf8}},
		{BGR565, []byte{0x1f, 0x00}},
		{XRGB8888, []byte{0x00, 0x00, 0xff, 0x00}},
		{XBGR8888, []byte{0xff, 0x00, 0x00, 0x00}},
	}
	for _, test := range tests {
		t.Run(test.Format.String(), func(it *testing.T) {
			var (
				size   = test.Format.BytesPerPixel()
				stride = 2*size + 3 // padded lines
				mem    = bytes.Repeat([]byte{0xaa}, stride*2)
				dev    = new(testCloser)
			)
			d, err := newDisplay(mem, 2, 2, stride, test.Format, dev)
			if err != nil {
				it.Fatal(err)
			}
			d.Set(1, 1, color.RGBA{R: 0xff, A: 0xff})
			if err = d.Refresh(); err != nil {
				it.Fatal(err)
			}

			if v := mem[stride+size : stride+2*size]; !bytes.Equal(v, test.Want) {
				it.Errorf("expected red pixel % x, got % x", test.Want, v)
			}
			if v := mem[:size]; !bytes.Equal(v, make([]byte, size)) {
				it.Errorf("expected black pixel, got % x", v)
			}
			if v := mem[2*size : stride]; !bytes.Equal(v, []byte{0xaa, 0xaa, 0xaa}) {
				it.Errorf("expected line padding untouched, got % x", v)
			}

			if err = d.Close(); err != nil {
				it.Fatal(err)
			}
			if dev.closed != 1 {
				it.Errorf("expected device closed once, got %d", dev.closed)
			}
			if err = d.Close(); !errors.Is(err, ErrClosed) {
				it.Errorf("expected ErrClosed, got %v", err)
			}
			if err = d.Refresh(); !errors.Is(err, ErrClosed) {
				it.Errorf("expected ErrClosed, got %v", err)
			}
		})
	}
}

func TestNewDisplay(t *testing.T) {
	if _, err := newDisplay(make([]byte, 16), 2, 2, 4, UnknownFormat, nil); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
	if _, err := newDisplay(make([]byte, 15), 2, 2, 8, XRGB8888, nil); err == nil {
		t.Error("expected error for short memory")
	}
	if _, err := newDisplay(make([]byte, 16), 2, 2, 4, XRGB8888, nil); err == nil {
		t.Error("expected error for short stride")
	}

	d, err := newDisplay(make([]byte, 8), 2, 2, 4, RGB565, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v := d.At(1, 1); v != (color.RGBA{A: 0xff}) {
		t.Errorf("expected black frame, got %v", v)
	}
	if v := d.Format(); v != RGB565 {
		t.Errorf("expected RGB565, got %s", v)
	}
	if err = d.Close(); err != nil {
		t.Errorf("expected close without device to succeed, got %v", err)
	}
}
