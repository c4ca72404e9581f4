//go:build !linux
// +build !linux

package blockdev

import "fmt"

// RawDevice is unsupported outside Linux; BLKGETSIZE64-style device sizing
// has no portable equivalent here. Use FileDevice against a disk image
// instead.
type RawDevice struct{}

func OpenRaw(path string) (*RawDevice, error) {
	return nil, fmt.Errorf("blockdev: raw device access is only supported on Linux")
}

func (d *RawDevice) Count() uint16 { return 0 }

func (d *RawDevice) ReadBlock(index uint16, buf []byte) error {
	return fmt.Errorf("blockdev: unsupported")
}

func (d *RawDevice) WriteBlock(index uint16, buf []byte) error {
	return fmt.Errorf("blockdev: unsupported")
}

func (d *RawDevice) Close() error { return nil }
