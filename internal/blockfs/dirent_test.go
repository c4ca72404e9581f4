package blockfs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindEntryAndFreeEntry(t *testing.T) {
	var root [MaxRootEntries]dirEntry
	require.Equal(t, -1, findEntry(&root, "missing"))
	require.Equal(t, 0, freeEntry(&root))

	setName(&root[0].name, "a")
	root[0].size = 1
	require.Equal(t, 0, findEntry(&root, "a"))
	require.Equal(t, 1, freeEntry(&root))
}

func TestRootDirectoryEncodeDecodeRoundTrip(t *testing.T) {
	var root [MaxRootEntries]dirEntry
	setName(&root[0].name, "alpha")
	root[0].size = 42
	root[0].firstBlock = 3
	setName(&root[5].name, "beta")
	root[5].size = 100
	root[5].firstBlock = NoDataBlock

	decoded := decodeRoot(encodeRoot(&root))
	require.Equal(t, root, decoded)
}

func TestDirEntryFreeAndNameString(t *testing.T) {
	var e dirEntry
	require.True(t, e.free())

	setName(&e.name, "report.txt")
	require.False(t, e.free())
	require.Equal(t, "report.txt", e.nameString())
}
