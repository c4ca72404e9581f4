package blockfs

import "encoding/binary"

// decodeRoot unpacks one BlockSize-byte block into MaxRootEntries directory
// entries.
func decodeRoot(block []byte) [MaxRootEntries]dirEntry {
	var root [MaxRootEntries]dirEntry
	for i := range root {
		off := i * DirEntrySize
		copy(root[i].name[:], block[off:off+MaxFilenameLen])
		root[i].size = binary.LittleEndian.Uint32(block[off+16 : off+20])
		root[i].firstBlock = binary.LittleEndian.Uint16(block[off+20 : off+22])
	}
	return root
}

// encodeRoot packs the in-memory root directory back into one BlockSize-byte
// block, zero-padding the reserved tail of every entry.
func encodeRoot(root *[MaxRootEntries]dirEntry) []byte {
	block := make([]byte, BlockSize)
	for i := range root {
		off := i * DirEntrySize
		copy(block[off:off+MaxFilenameLen], root[i].name[:])
		binary.LittleEndian.PutUint32(block[off+16:off+20], root[i].size)
		binary.LittleEndian.PutUint16(block[off+20:off+22], root[i].firstBlock)
	}
	return block
}

// findEntry returns the index of the non-free entry named name, or -1.
func findEntry(root *[MaxRootEntries]dirEntry, name string) int {
	for i := range root {
		if !root[i].free() && root[i].nameString() == name {
			return i
		}
	}
	return -1
}

// freeEntry returns the lowest-indexed free directory slot, or -1 if the
// directory is full.
func freeEntry(root *[MaxRootEntries]dirEntry) int {
	for i := range root {
		if root[i].free() {
			return i
		}
	}
	return -1
}
