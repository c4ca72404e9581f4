//go:build linux
// +build linux

package blockdev

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// RawDevice backs a Device with a real block-special file (e.g. /dev/sdb or
// a loop device), discovering its size with the BLKGETSIZE64 ioctl instead
// of trusting Stat, which reports 0 for block devices on Linux.
type RawDevice struct {
	f     *os.File
	count uint16
}

// OpenRaw opens path, which must name a block device or a regular file, and
// sizes it in BlockSize units. Block devices are probed with BLKGETSIZE64;
// regular files fall back to their Stat size, same as FileDevice.
func OpenRaw(path string) (*RawDevice, error) {
	path = NormalizeRawPath(path)

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("blockdev: open %s: %w", path, err)
	}

	size, err := deviceSize(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if size%BlockSize != 0 {
		f.Close()
		return nil, fmt.Errorf("blockdev: %s size %d is not a multiple of %d", path, size, BlockSize)
	}

	blocks := size / BlockSize
	if blocks > 0xFFFF {
		f.Close()
		return nil, fmt.Errorf("blockdev: %s has %d blocks, exceeds 16-bit block count", path, blocks)
	}

	return &RawDevice{f: f, count: uint16(blocks)}, nil
}

func deviceSize(f *os.File) (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("blockdev: stat %s: %w", f.Name(), err)
	}

	if info.Mode()&os.ModeDevice == 0 {
		return info.Size(), nil
	}

	size, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKGETSIZE64)
	if err != nil {
		return 0, fmt.Errorf("blockdev: BLKGETSIZE64 %s: %w", f.Name(), err)
	}
	return int64(size), nil
}

func (d *RawDevice) Count() uint16 { return d.count }

func (d *RawDevice) ReadBlock(index uint16, buf []byte) error {
	if err := checkBuf(buf); err != nil {
		return err
	}
	if err := checkIndex(index, d.count); err != nil {
		return err
	}
	_, err := d.f.ReadAt(buf, int64(index)*BlockSize)
	if err != nil {
		return fmt.Errorf("blockdev: read block %d: %w", index, err)
	}
	return nil
}

func (d *RawDevice) WriteBlock(index uint16, buf []byte) error {
	if err := checkBuf(buf); err != nil {
		return err
	}
	if err := checkIndex(index, d.count); err != nil {
		return err
	}
	_, err := d.f.WriteAt(buf, int64(index)*BlockSize)
	if err != nil {
		return fmt.Errorf("blockdev: write block %d: %w", index, err)
	}
	return nil
}

func (d *RawDevice) Close() error {
	if err := d.f.Close(); err != nil {
		return fmt.Errorf("blockdev: close: %w", err)
	}
	return nil
}
