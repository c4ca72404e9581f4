// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package blockfs implements a single-volume, FAT-chained file system over
// a fixed-size block device: superblock/FAT/root-directory layout, mount
// and unmount, directory and open-file lifecycles, and a block-granular
// read/write engine.
package blockfs

import (
	"fmt"

	"github.com/ostafen/blockfs/internal/blockdev"
	"github.com/ostafen/blockfs/internal/logger"
)

// Volume is the in-memory image of a mounted volume: the decoded
// superblock, FAT, root directory, and open-file table, plus the block
// device backing it. A Volume is owned by whoever mounted it; the core
// keeps no package-level state, so multiple Volumes (against different
// devices) can coexist in one process even though only one may be active
// against any given Device.
type Volume struct {
	dev  blockdev.Device
	sb   superblock
	fat  []uint16
	root [MaxRootEntries]dirEntry
	open [MaxOpenFiles]openFile

	scratch [BlockSize]byte

	log *logger.Logger

	// strictLegacyLseek replays the source's by-descriptor file_size
	// comparison documented in Design Note 9 ("lseek bug to
	// preserve-or-fix") instead of the corrected by-name comparison. Off
	// by default; see DESIGN.md.
	strictLegacyLseek bool
}

// Option configures a Volume at Mount time.
type Option func(*Volume)

// WithLogger attaches a diagnostic logger to the volume. The core itself
// never requires one; by default diagnostics are discarded.
func WithLogger(l *logger.Logger) Option {
	return func(v *Volume) { v.log = l }
}

// WithStrictLegacyLseek opts into the literal, by-descriptor file_size
// comparison from Design Note 9 instead of the corrected by-name one.
func WithStrictLegacyLseek() Option {
	return func(v *Volume) { v.strictLegacyLseek = true }
}

// Mount reads and validates the superblock of the already-open dev, loads
// the FAT and root directory images into memory, and returns a ready Volume. No
// partial state is exposed on failure: dev is left exactly as the caller
// handed it, modulo the read/write errors already required to produce it.
func Mount(dev blockdev.Device, opts ...Option) (*Volume, error) {
	v := &Volume{dev: dev, log: logger.Discard()}
	for _, opt := range opts {
		opt(v)
	}

	var block [BlockSize]byte
	if err := dev.ReadBlock(0, block[:]); err != nil {
		return nil, fmt.Errorf("blockfs: mount: read superblock: %w", err)
	}

	sb, err := decodeSuperblock(block[:])
	if err != nil {
		return nil, fmt.Errorf("blockfs: mount: %w", err)
	}
	if err := validateSuperblock(sb, dev.Count()); err != nil {
		return nil, fmt.Errorf("blockfs: mount: %w", err)
	}
	v.sb = sb

	rawFAT := make([]byte, int(sb.fatBlocks)*BlockSize)
	for i := 0; i < int(sb.fatBlocks); i++ {
		if err := dev.ReadBlock(uint16(1+i), rawFAT[i*BlockSize:(i+1)*BlockSize]); err != nil {
			return nil, fmt.Errorf("blockfs: mount: read FAT block %d: %w", i, err)
		}
	}
	v.fat = decodeFAT(rawFAT, sb.dataBlocks)

	if v.fat[0] != FatEOC {
		return nil, fmt.Errorf("blockfs: mount: FAT entry 0 is 0x%04X, want 0x%04X", v.fat[0], FatEOC)
	}

	var rootBlock [BlockSize]byte
	if err := dev.ReadBlock(sb.rootIndex, rootBlock[:]); err != nil {
		return nil, fmt.Errorf("blockfs: mount: read root directory: %w", err)
	}
	v.root = decodeRoot(rootBlock[:])

	v.log.Debugf("mounted volume: total=%d fat=%d root=%d data=%d(%d blocks)",
		sb.totalBlocks, sb.fatBlocks, sb.rootIndex, sb.dataIndex, sb.dataBlocks)

	return v, nil
}

// Unmount flushes the superblock, FAT, and root directory back to the
// device and closes it. All open handles are implicitly discarded. The
// Volume must not be used again after Unmount returns, whether it
// succeeded or failed.
func (v *Volume) Unmount() error {
	if v.dev == nil {
		return ErrNotMounted
	}
	dev := v.dev
	v.dev = nil

	if err := dev.WriteBlock(0, v.sb.encode()); err != nil {
		return fmt.Errorf("blockfs: unmount: write superblock: %w", err)
	}

	rawFAT := encodeFAT(v.fat, v.sb.fatBlocks)
	for i := 0; i < int(v.sb.fatBlocks); i++ {
		if err := dev.WriteBlock(uint16(1+i), rawFAT[i*BlockSize:(i+1)*BlockSize]); err != nil {
			return fmt.Errorf("blockfs: unmount: write FAT block %d: %w", i, err)
		}
	}

	if err := dev.WriteBlock(v.sb.rootIndex, encodeRoot(&v.root)); err != nil {
		return fmt.Errorf("blockfs: unmount: write root directory: %w", err)
	}

	if err := dev.Close(); err != nil {
		return fmt.Errorf("blockfs: unmount: close device: %w", err)
	}

	v.log.Debugf("unmounted volume")
	return nil
}

func (v *Volume) mounted() bool { return v.dev != nil }
