package framebuffer

import (
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/BeatGlow/fader/internal/ioctl"
)

var debug bool

func init() {
	debug = os.Getenv("FADER_DEBUG") != ""
}

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo ioctl.Command = 0x4600
	fbioGetFScreenInfo ioctl.Command = 0x4602
)

type fixScreenInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

type device struct {
	f   *os.File
	mem []byte
}

func (dev device) Close() error {
	if err := syscall.Munmap(dev.mem); err != nil {
		_ = dev.f.Close()
		return err
	}
	return dev.f.Close()
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
func Open(name string) (*Display, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	var (
		fd   = f.Fd()
		fix  fixScreenInfo
		info varScreenInfo
	)
	if err = ioctl.Do(fd, fbioGetFScreenInfo, &fix); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl.Do(fd, fbioGetVScreenInfo, &info); err != nil {
		_ = f.Close()
		return nil, err
	}
	format, err := parseFormat(&info)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %d bits per pixel", err, info.BitsPerPixel)
	}

	// Map pixel buffer.
	mem, err := syscall.Mmap(int(fd), 0, int(fix.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	dev := device{f: f, mem: mem}
	d, err := newDisplay(mem, int(info.Xres), int(info.Yres), int(fix.LineLength), format, dev)
	if err != nil {
		_ = dev.Close()
		return nil, err
	}
	if debug {
		log.Printf("framebuffer: %s is %dx%d %s", name, info.Xres, info.Yres, format)
	}
	return d, nil
}
