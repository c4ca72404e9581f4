package blockfs

import "errors"

// Sentinel errors for the core's failure taxonomy. Every operation still
// collapses to a single pass/fail indicator at the API boundary, but callers
// that want to distinguish causes can use errors.Is against these.
var (
	// ErrNotMounted is returned by any operation invoked before Mount
	// succeeds or after Unmount returns.
	ErrNotMounted = errors.New("blockfs: volume not mounted")

	// ErrBadSignature means the superblock's signature field did not read
	// back as "ECS150FS".
	ErrBadSignature = errors.New("blockfs: bad superblock signature")

	// ErrBadLayout means the superblock failed one of the geometry
	// invariants from the data model (block-count consistency, contiguous
	// region placement, FAT sizing).
	ErrBadLayout = errors.New("blockfs: inconsistent superblock layout")

	// ErrNameTooLong means a filename did not fit in the 16-byte field
	// with room for its NUL terminator.
	ErrNameTooLong = errors.New("blockfs: filename too long")

	// ErrNameExists means create was called with a name already present
	// in a non-free root directory entry.
	ErrNameExists = errors.New("blockfs: file already exists")

	// ErrNoSuchFile means the name did not match any non-free root
	// directory entry.
	ErrNoSuchFile = errors.New("blockfs: no such file")

	// ErrDirFull means every root directory slot is occupied.
	ErrDirFull = errors.New("blockfs: root directory is full")

	// ErrFileOpen means delete was refused because a handle referencing
	// the file (or, for the legacy behavior, any file) is still open.
	ErrFileOpen = errors.New("blockfs: file is open")

	// ErrTooManyOpen means the open-file table is full.
	ErrTooManyOpen = errors.New("blockfs: too many open files")

	// ErrBadDescriptor means fd was out of [0, MaxOpenFiles) or named a
	// free open-file slot.
	ErrBadDescriptor = errors.New("blockfs: invalid file descriptor")

	// ErrSeekPastEnd means lseek's offset exceeded the target file's
	// current size.
	ErrSeekPastEnd = errors.New("blockfs: seek offset past end of file")

	// ErrNoFreeBlock means write could not extend a chain because the FAT
	// has no free entry left; write still reports the short count it
	// managed before returning this.
	ErrNoFreeBlock = errors.New("blockfs: no free data block")
)
