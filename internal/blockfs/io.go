package blockfs

import "fmt"

// Read copies up to count bytes from descriptor fd's current offset into
// out, advancing the offset by the number of bytes actually delivered. It
// never returns more than min(count, file_size - offset) bytes, and never
// returns an error purely for reaching end of file; it returns 0 with a nil
// error once offset >= file_size.
func (v *Volume) Read(fd int, out []byte, count int) (int, error) {
	h, err := v.handle(fd)
	if err != nil {
		return 0, err
	}

	idx := findEntry(&v.root, h.nameString())
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoSuchFile, h.nameString())
	}
	entry := &v.root[idx]

	if h.offset >= entry.size {
		return 0, nil
	}

	remaining := count
	if avail := int(entry.size - h.offset); remaining > avail {
		remaining = avail
	}
	if remaining > len(out) {
		remaining = len(out)
	}

	delivered := 0
	for remaining > 0 {
		pos := int(h.offset) / BlockSize
		blockOff := int(h.offset) % BlockSize

		relBlock, ok := chainBlock(v.fat, entry.firstBlock, pos)
		if !ok {
			break
		}

		if err := v.dev.ReadBlock(v.sb.dataIndex+relBlock, v.scratch[:]); err != nil {
			return delivered, fmt.Errorf("blockfs: read fd %d: %w", fd, err)
		}

		n := BlockSize - blockOff
		if n > remaining {
			n = remaining
		}
		copy(out[delivered:delivered+n], v.scratch[blockOff:blockOff+n])

		delivered += n
		h.offset += uint32(n)
		remaining -= n
	}

	return delivered, nil
}

// Write copies up to count bytes from in into descriptor fd's file starting
// at its current offset, lazily allocating new data blocks as the chain
// needs to grow. If the FAT runs out of free blocks mid-write, it stops and
// returns the short count already written together with ErrNoFreeBlock; the
// bytes counted are on disk and reflected in file_size. file_size grows if the final
// offset exceeds it.
func (v *Volume) Write(fd int, in []byte, count int) (int, error) {
	h, err := v.handle(fd)
	if err != nil {
		return 0, err
	}

	idx := findEntry(&v.root, h.nameString())
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoSuchFile, h.nameString())
	}
	entry := &v.root[idx]

	remaining := count
	if remaining > len(in) {
		remaining = len(in)
	}

	written := 0
	exhausted := false
	for remaining > 0 {
		pos := int(h.offset) / BlockSize
		blockOff := int(h.offset) % BlockSize

		relBlock, ok := chainBlock(v.fat, entry.firstBlock, pos)
		if !ok {
			newBlock, allocated := v.extendChain(entry, pos)
			if !allocated {
				exhausted = true
				break
			}
			relBlock = newBlock
		}

		if blockOff != 0 || remaining < BlockSize {
			if err := v.dev.ReadBlock(v.sb.dataIndex+relBlock, v.scratch[:]); err != nil {
				return written, fmt.Errorf("blockfs: write fd %d: %w", fd, err)
			}
		}

		n := BlockSize - blockOff
		if n > remaining {
			n = remaining
		}
		copy(v.scratch[blockOff:blockOff+n], in[written:written+n])

		if err := v.dev.WriteBlock(v.sb.dataIndex+relBlock, v.scratch[:]); err != nil {
			return written, fmt.Errorf("blockfs: write fd %d: %w", fd, err)
		}

		written += n
		h.offset += uint32(n)
		remaining -= n
	}

	if h.offset > entry.size {
		entry.size = h.offset
	}

	if exhausted {
		return written, ErrNoFreeBlock
	}
	return written, nil
}

// extendChain grows entry's chain by one block so that chain position pos
// becomes addressable, linking the new block to whatever the chain's
// current tail is (or setting firstBlock directly if the chain was empty).
// It reports the data-block-relative index of the new block, or false if
// the FAT has no free entry.
//
// pos is expected to be exactly chainLength(entry), i.e. one past the
// current end of the chain; io.go only ever calls this when chainBlock
// just failed to resolve pos, which for a sequential writer is always the
// next block past the tail.
func (v *Volume) extendChain(entry *dirEntry, pos int) (uint16, bool) {
	free, ok := freeFatEntry(v.fat)
	if !ok {
		return 0, false
	}

	if entry.firstBlock == NoDataBlock {
		entry.firstBlock = free
	} else {
		tail := entry.firstBlock
		for i := 0; i < pos-1; i++ {
			tail = v.fat[tail]
		}
		v.fat[tail] = free
	}
	v.fat[free] = FatEOC

	return free, true
}
