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

// Package mkfs lays out a fresh blockfs volume image. It is deliberately
// external to the core: blockfs.Mount only ever validates and maintains a
// layout that already exists, exactly as described in the on-disk layout
// contract; something has to have written that layout first.
package mkfs

import (
	"encoding/binary"
	"fmt"

	"github.com/ostafen/blockfs/internal/blockdev"
)

const (
	blockSize     = blockdev.BlockSize
	signatureText = "ECS150FS"
	fatEOC        = 0xFFFF
)

// MaxDataBlocks is the largest data-block count that still fits a 16-bit
// total_blocks field once superblock, root, and FAT overhead are accounted
// for.
const MaxDataBlocks = 0xFFFF - 2 - 32 // 65501 entries need 32 FAT blocks, filling total_blocks exactly

// Format creates path as a new disk image sized to hold exactly dataBlocks
// data blocks, and writes a valid, empty superblock, FAT, and root
// directory to it: every FAT entry is free (FatEntryFree) except entry 0,
// which is the permanent FatEOC sentinel, and every root directory slot is
// free.
func Format(path string, dataBlocks uint16) error {
	if dataBlocks == 0 {
		return fmt.Errorf("mkfs: data block count must be positive")
	}

	fatBlocks := fatBlocksFor(dataBlocks)
	totalBlocks := uint32(fatBlocks) + uint32(dataBlocks) + 2
	if totalBlocks > 0xFFFF {
		return fmt.Errorf("mkfs: %d data blocks need %d total blocks, exceeds 16-bit limit", dataBlocks, totalBlocks)
	}

	dev, err := blockdev.CreateFile(path, uint16(totalBlocks))
	if err != nil {
		return fmt.Errorf("mkfs: %w", err)
	}
	defer dev.Close()

	rootIndex := uint16(fatBlocks) + 1
	dataIndex := rootIndex + 1

	sb := encodeSuperblock(uint16(totalBlocks), rootIndex, dataIndex, dataBlocks, fatBlocks)
	if err := dev.WriteBlock(0, sb); err != nil {
		return fmt.Errorf("mkfs: write superblock: %w", err)
	}

	fat := make([]byte, int(fatBlocks)*blockSize)
	binary.LittleEndian.PutUint16(fat[0:2], fatEOC)
	for i := 0; i < int(fatBlocks); i++ {
		if err := dev.WriteBlock(uint16(1+i), fat[i*blockSize:(i+1)*blockSize]); err != nil {
			return fmt.Errorf("mkfs: write FAT block %d: %w", i, err)
		}
	}

	var root [blockSize]byte
	if err := dev.WriteBlock(rootIndex, root[:]); err != nil {
		return fmt.Errorf("mkfs: write root directory: %w", err)
	}

	return nil
}

func encodeSuperblock(totalBlocks, rootIndex, dataIndex, dataBlocks uint16, fatBlocks uint8) []byte {
	block := make([]byte, blockSize)
	copy(block[0:8], signatureText)
	binary.LittleEndian.PutUint16(block[8:10], totalBlocks)
	binary.LittleEndian.PutUint16(block[10:12], rootIndex)
	binary.LittleEndian.PutUint16(block[12:14], dataIndex)
	binary.LittleEndian.PutUint16(block[14:16], dataBlocks)
	block[16] = fatBlocks
	return block
}

// fatBlocksFor computes ceil(dataBlocks*2 / blockSize), matching the
// invariant blockfs.Mount validates.
func fatBlocksFor(dataBlocks uint16) uint8 {
	entryBytes := uint32(dataBlocks) * 2
	return uint8((entryBytes + blockSize - 1) / blockSize)
}
