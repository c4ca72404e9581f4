package blockfs

import "encoding/binary"

// decodeFAT unpacks fatBlocks worth of raw block data into a dataBlocks-long
// slice of u16 entries. Any bytes past dataBlocks*2 (trailing padding in the
// last FAT block) are ignored.
func decodeFAT(raw []byte, dataBlocks uint16) []uint16 {
	fat := make([]uint16, dataBlocks)
	for i := range fat {
		fat[i] = binary.LittleEndian.Uint16(raw[i*2 : i*2+2])
	}
	return fat
}

// encodeFAT packs the in-memory FAT back into fatBlocks*BlockSize bytes,
// little-endian, zero-padding past the last real entry.
func encodeFAT(fat []uint16, fatBlocks uint8) []byte {
	raw := make([]byte, int(fatBlocks)*BlockSize)
	for i, entry := range fat {
		binary.LittleEndian.PutUint16(raw[i*2:i*2+2], entry)
	}
	return raw
}

// chainBlock returns the data-block-relative index of the block at chain
// position pos within the chain starting at first, walking pos hops through
// fat. It fails if the chain terminates (hits FatEOC) before reaching pos.
func chainBlock(fat []uint16, first uint16, pos int) (uint16, bool) {
	cur := first
	for i := 0; i < pos; i++ {
		if cur == FatEOC {
			return 0, false
		}
		cur = fat[cur]
	}
	if cur == FatEOC {
		return 0, false
	}
	return cur, true
}

// chainLength counts the number of data blocks visited from first before
// hitting FatEOC. An empty chain (first == NoDataBlock) has length 0.
func chainLength(fat []uint16, first uint16) int {
	if first == NoDataBlock {
		return 0
	}
	n := 0
	cur := first
	for cur != FatEOC {
		n++
		cur = fat[cur]
	}
	return n
}

// freeFatEntry returns the lowest-indexed free (FatEntryFree) entry in fat,
// skipping index 0 which is permanently reserved as FatEOC.
func freeFatEntry(fat []uint16) (uint16, bool) {
	for i := 1; i < len(fat); i++ {
		if fat[i] == FatEntryFree {
			return uint16(i), true
		}
	}
	return 0, false
}

// freeFatCount returns the number of FatEntryFree entries in fat.
func freeFatCount(fat []uint16) int {
	n := 0
	for _, e := range fat {
		if e == FatEntryFree {
			n++
		}
	}
	return n
}
