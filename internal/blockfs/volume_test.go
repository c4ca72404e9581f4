package blockfs

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostafen/blockfs/internal/blockdev"
	"github.com/ostafen/blockfs/internal/mkfs"
)

// mountFresh formats a new image with the given data block count and mounts
// it, returning the volume and the backing path for re-mount tests.
func mountFresh(t *testing.T, dataBlocks uint16) (*Volume, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, mkfs.Format(path, dataBlocks))

	dev, err := blockdev.OpenFile(path)
	require.NoError(t, err)

	vol, err := Mount(dev)
	require.NoError(t, err)
	return vol, path
}

func remount(t *testing.T, path string) *Volume {
	t.Helper()
	dev, err := blockdev.OpenFile(path)
	require.NoError(t, err)
	vol, err := Mount(dev)
	require.NoError(t, err)
	return vol
}

// S1: empty volume reports the expected free ratios.
func TestEmptyVolumeInfoRatios(t *testing.T) {
	vol, _ := mountFresh(t, 7)
	defer vol.Unmount()

	var buf bytes.Buffer
	require.NoError(t, vol.Info(&buf))
	require.Contains(t, buf.String(), "fat_free_ratio=6/7\n")
	require.Contains(t, buf.String(), "rdir_free_ratio=128/128\n")
}

// S2: a small single-block file survives an unmount/mount cycle.
func TestSingleSmallFileRoundTripsAcrossMount(t *testing.T) {
	vol, path := mountFresh(t, 7)

	require.NoError(t, vol.Create("hi"))
	fd, err := vol.Open("hi")
	require.NoError(t, err)

	n, err := vol.Write(fd, []byte("Hello"), 5)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.NoError(t, vol.Close(fd))
	require.NoError(t, vol.Unmount())

	vol = remount(t, path)
	defer vol.Unmount()

	fd, err = vol.Open("hi")
	require.NoError(t, err)

	size, err := vol.Stat(fd)
	require.NoError(t, err)
	require.EqualValues(t, 5, size)

	out := make([]byte, 5)
	n, err = vol.Read(fd, out, 5)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("Hello"), out)
}

// S3: a write spanning block boundaries chains two data blocks and reads
// back byte-identical.
func TestCrossBlockWriteChainsAndReadsBack(t *testing.T) {
	vol, _ := mountFresh(t, 7)
	defer vol.Unmount()

	require.NoError(t, vol.Create("big"))
	fd, err := vol.Open("big")
	require.NoError(t, err)

	payload := make([]byte, 5000)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	n, err := vol.Write(fd, payload, len(payload))
	require.NoError(t, err)
	require.Equal(t, 5000, n)

	size, err := vol.Stat(fd)
	require.NoError(t, err)
	require.EqualValues(t, 5000, size)

	require.NoError(t, vol.Lseek(fd, 0))
	out := make([]byte, 5000)
	n, err = vol.Read(fd, out, 5000)
	require.NoError(t, err)
	require.Equal(t, 5000, n)
	require.Equal(t, payload, out)

	idx := findEntry(&vol.root, "big")
	require.GreaterOrEqual(t, idx, 0)
	require.Equal(t, 2, chainLength(vol.fat, vol.root[idx].firstBlock))
}

// S4: a write that exceeds the disk's remaining free blocks stops short and
// reports exactly what was written.
func TestShortWriteAtCapacity(t *testing.T) {
	// dataBlocks=3 leaves exactly 2 free entries: index 0 is the permanent
	// FatEOC sentinel and never allocatable.
	vol, _ := mountFresh(t, 3)
	defer vol.Unmount()

	require.NoError(t, vol.Create("f"))
	fd, err := vol.Open("f")
	require.NoError(t, err)

	n, err := vol.Write(fd, bytes.Repeat([]byte{0x42}, 10000), 10000)
	require.ErrorIs(t, err, ErrNoFreeBlock)
	require.Equal(t, 2*BlockSize, n)

	size, err := vol.Stat(fd)
	require.NoError(t, err)
	require.EqualValues(t, 2*BlockSize, size)
}

// S5: two descriptors against the same file keep independent offsets.
func TestIndependentOffsetsAcrossDescriptors(t *testing.T) {
	vol, _ := mountFresh(t, 7)
	defer vol.Unmount()

	require.NoError(t, vol.Create("f"))
	fd1, err := vol.Open("f")
	require.NoError(t, err)
	fd2, err := vol.Open("f")
	require.NoError(t, err)
	require.NotEqual(t, fd1, fd2)

	_, err = vol.Write(fd1, []byte("0123456789ABCDEF"), 16)
	require.NoError(t, err)

	require.NoError(t, vol.Lseek(fd1, 0))
	require.NoError(t, vol.Lseek(fd2, 10))

	out1 := make([]byte, 4)
	n, err := vol.Read(fd1, out1, 4)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte("0123"), out1)

	out2 := make([]byte, 4)
	n, err = vol.Read(fd2, out2, 4)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte("ABCD"), out2)
}

// S6: delete is refused while the bug-compatible rule sees any handle open,
// and succeeds once that handle is closed.
func TestDeleteWhileOpen(t *testing.T) {
	vol, _ := mountFresh(t, 7)
	defer vol.Unmount()

	require.NoError(t, vol.Create("x"))
	fd, err := vol.Open("x")
	require.NoError(t, err)

	err = vol.Delete("x")
	require.ErrorIs(t, err, ErrFileOpen)

	require.NoError(t, vol.Close(fd))
	require.NoError(t, vol.Delete("x"))
}

// DeleteStrict only blocks when a handle on the same file is open; a handle
// on a different file must not interfere.
func TestDeleteStrictOnlyBlocksSameFile(t *testing.T) {
	vol, _ := mountFresh(t, 7)
	defer vol.Unmount()

	require.NoError(t, vol.Create("x"))
	require.NoError(t, vol.Create("y"))
	fdY, err := vol.Open("y")
	require.NoError(t, err)

	require.NoError(t, vol.DeleteStrict("x"))

	require.NoError(t, vol.Close(fdY))
}

func TestCreateDeleteCreateSucceeds(t *testing.T) {
	vol, _ := mountFresh(t, 7)
	defer vol.Unmount()

	require.NoError(t, vol.Create("dup"))
	require.NoError(t, vol.Delete("dup"))
	require.NoError(t, vol.Create("dup"))

	idx := findEntry(&vol.root, "dup")
	require.GreaterOrEqual(t, idx, 0)
	require.EqualValues(t, 0, vol.root[idx].size)
}

func TestDeleteFreesExactlyTheChainLength(t *testing.T) {
	vol, _ := mountFresh(t, 7)
	defer vol.Unmount()

	require.NoError(t, vol.Create("big"))
	fd, err := vol.Open("big")
	require.NoError(t, err)
	_, err = vol.Write(fd, bytes.Repeat([]byte{1}, 3*BlockSize), 3*BlockSize)
	require.NoError(t, err)
	require.NoError(t, vol.Close(fd))

	before := freeFatCount(vol.fat)
	require.NoError(t, vol.Delete("big"))
	after := freeFatCount(vol.fat)
	require.Equal(t, 3, after-before)
}

func TestFatEntryZeroIsAlwaysEOC(t *testing.T) {
	vol, _ := mountFresh(t, 7)
	defer vol.Unmount()
	require.Equal(t, uint16(FatEOC), vol.fat[0])
}

func TestLseekPastEndFails(t *testing.T) {
	vol, _ := mountFresh(t, 7)
	defer vol.Unmount()

	require.NoError(t, vol.Create("f"))
	fd, err := vol.Open("f")
	require.NoError(t, err)

	err = vol.Lseek(fd, 1)
	require.ErrorIs(t, err, ErrSeekPastEnd)
}

func TestStrictLegacyLseekIndexesByDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, mkfs.Format(path, 7))
	dev, err := blockdev.OpenFile(path)
	require.NoError(t, err)

	vol, err := Mount(dev, WithStrictLegacyLseek())
	require.NoError(t, err)
	defer vol.Unmount()

	require.NoError(t, vol.Create("a"))
	require.NoError(t, vol.Create("b"))

	fdB, err := vol.Open("b")
	require.NoError(t, err)
	_, err = vol.Write(fdB, []byte("hello"), 5)
	require.NoError(t, err)

	fdA, err := vol.Open("a")
	require.NoError(t, err)

	// Legacy lseek compares against root[fd].size, not the handle's own
	// file. fdB is 0, so slot 0 ("a", empty) bounds it and even offset 1
	// inside "b" is rejected; fdA is 1, so slot 1 ("b", 5 bytes) lets it
	// seek past the end of the empty "a".
	err = vol.Lseek(fdB, 1)
	require.ErrorIs(t, err, ErrSeekPastEnd)
	require.NoError(t, vol.Lseek(fdA, 5))
}

func TestMountRejectsBadSignature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, mkfs.Format(path, 7))

	dev, err := blockdev.OpenFile(path)
	require.NoError(t, err)
	var bad [BlockSize]byte
	copy(bad[:], "GARBAGE!")
	require.NoError(t, dev.WriteBlock(0, bad[:]))
	require.NoError(t, dev.Close())

	dev, err = blockdev.OpenFile(path)
	require.NoError(t, err)

	_, err = Mount(dev)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestOperationsBeforeMountFail(t *testing.T) {
	var vol Volume
	require.ErrorIs(t, vol.Create("x"), ErrNotMounted)
	require.ErrorIs(t, vol.Delete("x"), ErrNotMounted)
	_, err := vol.Open("x")
	require.ErrorIs(t, err, ErrNotMounted)
}

func TestCreateRejectsDuplicateAndOverlongNames(t *testing.T) {
	vol, _ := mountFresh(t, 7)
	defer vol.Unmount()

	require.NoError(t, vol.Create("dup"))
	require.ErrorIs(t, vol.Create("dup"), ErrNameExists)
	require.ErrorIs(t, vol.Create("this-name-is-too-long"), ErrNameTooLong)
}
