package blockdev

import (
	"fmt"
	"os"
)

// FileDevice backs a Device with a plain *os.File, sized at open time from
// the file's length. It is what the shell uses for the .img disks created
// by mkfs, and what the test suite mounts.
type FileDevice struct {
	f     *os.File
	count uint16
}

// OpenFile opens path as a block device, deriving the block count from the
// file's current length. The length must be an exact multiple of BlockSize.
func OpenFile(path string) (*FileDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("blockdev: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("blockdev: stat %s: %w", path, err)
	}

	if info.Size()%BlockSize != 0 {
		f.Close()
		return nil, fmt.Errorf("blockdev: %s size %d is not a multiple of %d", path, info.Size(), BlockSize)
	}

	blocks := info.Size() / BlockSize
	if blocks > 0xFFFF {
		f.Close()
		return nil, fmt.Errorf("blockdev: %s has %d blocks, exceeds 16-bit block count", path, blocks)
	}

	return &FileDevice{f: f, count: uint16(blocks)}, nil
}

// CreateFile creates (or truncates) path and sizes it to hold count blocks,
// for use by mkfs.
func CreateFile(path string, count uint16) (*FileDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("blockdev: create %s: %w", path, err)
	}

	if err := f.Truncate(int64(count) * BlockSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("blockdev: truncate %s: %w", path, err)
	}

	return &FileDevice{f: f, count: count}, nil
}

func (d *FileDevice) Count() uint16 { return d.count }

func (d *FileDevice) ReadBlock(index uint16, buf []byte) error {
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

func (d *FileDevice) WriteBlock(index uint16, buf []byte) error {
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

func (d *FileDevice) Close() error {
	if err := d.f.Close(); err != nil {
		return fmt.Errorf("blockdev: close: %w", err)
	}
	return nil
}
