//go:build !linux

package framebuffer

func Open(_ string) (*Display, error) {
	return nil, ErrNotSupported
}
