package blockfs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChainBlockWalksAndStopsAtEOC(t *testing.T) {
	fat := []uint16{FatEOC, 2, 3, FatEOC}

	b, ok := chainBlock(fat, 1, 0)
	require.True(t, ok)
	require.EqualValues(t, 1, b)

	b, ok = chainBlock(fat, 1, 1)
	require.True(t, ok)
	require.EqualValues(t, 2, b)

	b, ok = chainBlock(fat, 1, 2)
	require.True(t, ok)
	require.EqualValues(t, 3, b)

	_, ok = chainBlock(fat, 1, 3)
	require.False(t, ok)
}

func TestChainBlockEmptyFileFails(t *testing.T) {
	fat := []uint16{FatEOC, 0, 0}
	_, ok := chainBlock(fat, NoDataBlock, 0)
	require.False(t, ok)
}

func TestChainLength(t *testing.T) {
	fat := []uint16{FatEOC, 2, 3, FatEOC}
	require.Equal(t, 0, chainLength(fat, NoDataBlock))
	require.Equal(t, 3, chainLength(fat, 1))
}

func TestFreeFatEntrySkipsReservedIndexZero(t *testing.T) {
	fat := []uint16{FatEntryFree, FatEntryFree, FatEOC}
	idx, ok := freeFatEntry(fat)
	require.True(t, ok)
	require.EqualValues(t, 1, idx)
}

func TestFreeFatEntryExhausted(t *testing.T) {
	fat := []uint16{FatEOC, FatEOC, FatEOC}
	_, ok := freeFatEntry(fat)
	require.False(t, ok)
}

func TestEncodeDecodeFATRoundTrip(t *testing.T) {
	fat := []uint16{FatEOC, 0, 3, FatEOC, 0}
	raw := encodeFAT(fat, uint8(fatBlocksFor(uint16(len(fat)))))
	decoded := decodeFAT(raw, uint16(len(fat)))
	require.Equal(t, fat, decoded)
}
