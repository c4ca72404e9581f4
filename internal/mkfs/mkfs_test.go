package mkfs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostafen/blockfs/internal/blockdev"
	"github.com/ostafen/blockfs/internal/blockfs"
)

func TestFormatProducesAMountableVolume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")

	require.NoError(t, Format(path, 16))

	dev, err := blockdev.OpenFile(path)
	require.NoError(t, err)

	vol, err := blockfs.Mount(dev)
	require.NoError(t, err)
	require.Empty(t, vol.Names())
	require.NoError(t, vol.Unmount())
}

func TestFormatRejectsZeroDataBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	err := Format(path, 0)
	require.Error(t, err)
}

func TestFatBlocksForRoundsUp(t *testing.T) {
	require.EqualValues(t, 1, fatBlocksFor(1))
	require.EqualValues(t, 1, fatBlocksFor(2048))
	require.EqualValues(t, 2, fatBlocksFor(2049))
}
