package blockfs

import (
	"fmt"
	"io"
)

// Create adds a new, empty file named name to the root directory. It does
// not reserve a data block: the file's chain starts out empty (first block
// index NoDataBlock) and is lazily allocated on first Write, per Design
// Note 9 ("Empty-file sentinel").
func (v *Volume) Create(name string) error {
	if !v.mounted() {
		return ErrNotMounted
	}
	if len(name) >= MaxFilenameLen {
		return fmt.Errorf("%w: %q is %d bytes, limit is %d", ErrNameTooLong, name, len(name), MaxFilenameLen-1)
	}
	if findEntry(&v.root, name) >= 0 {
		return fmt.Errorf("%w: %q", ErrNameExists, name)
	}

	slot := freeEntry(&v.root)
	if slot < 0 {
		return ErrDirFull
	}

	e := &v.root[slot]
	setName(&e.name, name)
	e.size = 0
	e.firstBlock = NoDataBlock

	v.log.Debugf("create %q in slot %d", name, slot)
	return nil
}

// Delete removes name from the root directory and frees its entire FAT
// chain. Per Design Note 9, this reproduces the source's literal
// delete-while-open behavior: the delete is refused if ANY handle is
// currently open, not only a handle referencing this file. Use
// DeleteStrict for the corrected, same-file-only rule.
func (v *Volume) Delete(name string) error {
	return v.delete(name, v.anyOpen)
}

// DeleteStrict removes name from the root directory, refusing only when a
// handle referencing this specific file is still open. This is the
// arguably-correct rule described alongside Design Note 9's bug-compatible
// default.
func (v *Volume) DeleteStrict(name string) error {
	return v.delete(name, func() bool { return v.isOpen(name) })
}

func (v *Volume) delete(name string, blocked func() bool) error {
	if !v.mounted() {
		return ErrNotMounted
	}

	idx := findEntry(&v.root, name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrNoSuchFile, name)
	}

	if blocked() {
		return fmt.Errorf("%w: %q", ErrFileOpen, name)
	}

	e := &v.root[idx]
	cur := e.firstBlock
	for cur != NoDataBlock && cur != FatEOC {
		next := v.fat[cur]
		v.fat[cur] = FatEntryFree
		cur = next
	}

	*e = dirEntry{}

	v.log.Debugf("delete %q", name)
	return nil
}

func (v *Volume) anyOpen() bool {
	for i := range v.open {
		if !v.open[i].free() {
			return true
		}
	}
	return false
}

func (v *Volume) isOpen(name string) bool {
	for i := range v.open {
		if !v.open[i].free() && v.open[i].nameString() == name {
			return true
		}
	}
	return false
}

// Names returns the names of every non-free root directory entry, in
// directory-slot order. Used by frontends (the FUSE bridge) that need a
// structured listing rather than the human-readable Ls report.
func (v *Volume) Names() []string {
	if !v.mounted() {
		return nil
	}
	var names []string
	for i := range v.root {
		if !v.root[i].free() {
			names = append(names, v.root[i].nameString())
		}
	}
	return names
}

// Ls writes the "FS Ls:" listing described in the external interface to w,
// in directory-slot order, skipping free slots.
func (v *Volume) Ls(w io.Writer) error {
	if !v.mounted() {
		return ErrNotMounted
	}

	if _, err := fmt.Fprintln(w, "FS Ls:"); err != nil {
		return err
	}
	for i := range v.root {
		e := &v.root[i]
		if e.free() {
			continue
		}
		if _, err := fmt.Fprintf(w, "file: %s, size: %d, data_blk: %d\n", e.nameString(), e.size, e.firstBlock); err != nil {
			return err
		}
	}
	return nil
}

// Info writes the "FS Info:" report described in the external interface to
// w: superblock geometry plus free-FAT and free-directory-slot ratios.
func (v *Volume) Info(w io.Writer) error {
	if !v.mounted() {
		return ErrNotMounted
	}

	freeFat := freeFatCount(v.fat)
	freeDir := 0
	for i := range v.root {
		if v.root[i].free() {
			freeDir++
		}
	}

	_, err := fmt.Fprintf(w,
		"FS Info:\n"+
			"total_blk_count=%d\n"+
			"fat_blk_count=%d\n"+
			"rdir_blk=%d\n"+
			"data_blk=%d\n"+
			"data_blk_count=%d\n"+
			"fat_free_ratio=%d/%d\n"+
			"rdir_free_ratio=%d/%d\n",
		v.sb.totalBlocks, v.sb.fatBlocks, v.sb.rootIndex, v.sb.dataIndex, v.sb.dataBlocks,
		freeFat, v.sb.dataBlocks,
		freeDir, MaxRootEntries,
	)
	return err
}
