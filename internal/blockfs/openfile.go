package blockfs

import "fmt"

// Open occupies the lowest-indexed free open-file slot against name and
// returns it as a descriptor. Multiple descriptors may reference the same
// name; each gets its own offset, initialized to 0.
func (v *Volume) Open(name string) (int, error) {
	if !v.mounted() {
		return 0, ErrNotMounted
	}
	if findEntry(&v.root, name) < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoSuchFile, name)
	}

	slot := -1
	for i := range v.open {
		if v.open[i].free() {
			slot = i
			break
		}
	}
	if slot < 0 {
		return 0, ErrTooManyOpen
	}

	h := &v.open[slot]
	setName(&h.name, name)
	h.offset = 0

	v.log.Debugf("open %q -> fd %d", name, slot)
	return slot, nil
}

// Close releases descriptor fd.
func (v *Volume) Close(fd int) error {
	h, err := v.handle(fd)
	if err != nil {
		return err
	}
	*h = openFile{}
	v.log.Debugf("close fd %d", fd)
	return nil
}

// Stat returns the current size of the file descriptor fd refers to, read
// from its root directory entry.
func (v *Volume) Stat(fd int) (uint32, error) {
	h, err := v.handle(fd)
	if err != nil {
		return 0, err
	}
	idx := findEntry(&v.root, h.nameString())
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoSuchFile, h.nameString())
	}
	return v.root[idx].size, nil
}

// Lseek repositions descriptor fd's cursor to offset, failing if offset
// exceeds the target file's size. Per Design Note 9, the comparison is
// against the directory entry whose name matches the handle (the corrected
// behavior) unless the volume was mounted with WithStrictLegacyLseek, which
// replays the source's by-descriptor indexing bug instead.
func (v *Volume) Lseek(fd int, offset uint32) error {
	h, err := v.handle(fd)
	if err != nil {
		return err
	}

	var size uint32
	if v.strictLegacyLseek {
		if fd < 0 || fd >= len(v.root) {
			return fmt.Errorf("%w: legacy lseek indexes root by descriptor, fd %d is out of directory range", ErrBadDescriptor, fd)
		}
		size = v.root[fd].size
	} else {
		idx := findEntry(&v.root, h.nameString())
		if idx < 0 {
			return fmt.Errorf("%w: %q", ErrNoSuchFile, h.nameString())
		}
		size = v.root[idx].size
	}

	if offset > size {
		return fmt.Errorf("%w: offset %d > size %d", ErrSeekPastEnd, offset, size)
	}

	h.offset = offset
	return nil
}

// handle validates fd and returns the live open-file slot it names.
func (v *Volume) handle(fd int) (*openFile, error) {
	if !v.mounted() {
		return nil, ErrNotMounted
	}
	if fd < 0 || fd >= MaxOpenFiles {
		return nil, fmt.Errorf("%w: %d", ErrBadDescriptor, fd)
	}
	h := &v.open[fd]
	if h.free() {
		return nil, fmt.Errorf("%w: fd %d is not open", ErrBadDescriptor, fd)
	}
	return h, nil
}
