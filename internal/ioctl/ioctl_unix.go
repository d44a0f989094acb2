//go:build unix

package ioctl

import (
	"fmt"
	"reflect"
	"syscall"
)

// Do executes the ioctl call, ptr must be a pointer or nil.
func Do(fd uintptr, command Command, ptr any) error {
	var p uintptr

	if ptr != nil {
		v := reflect.ValueOf(ptr)
		p = v.Pointer()
	}

	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, uintptr(command), p)
	if errno != 0 {
		return fmt.Errorf("%s failed: %w", command, errno)
	}
	return nil
}
