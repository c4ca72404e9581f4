package blockdev

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateFileThenOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")

	dev, err := CreateFile(path, 10)
	require.NoError(t, err)
	require.EqualValues(t, 10, dev.Count())
	require.NoError(t, dev.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.EqualValues(t, 10, reopened.Count())
}

func TestFileDeviceReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	dev, err := CreateFile(path, 4)
	require.NoError(t, err)
	defer dev.Close()

	want := bytes.Repeat([]byte{0xAB}, BlockSize)
	require.NoError(t, dev.WriteBlock(2, want))

	got := make([]byte, BlockSize)
	require.NoError(t, dev.ReadBlock(2, got))
	require.Equal(t, want, got)
}

func TestFileDeviceRejectsWrongSizeBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	dev, err := CreateFile(path, 2)
	require.NoError(t, err)
	defer dev.Close()

	err = dev.WriteBlock(0, make([]byte, BlockSize-1))
	require.Error(t, err)
}

func TestFileDeviceRejectsOutOfRangeIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	dev, err := CreateFile(path, 2)
	require.NoError(t, err)
	defer dev.Close()

	err = dev.ReadBlock(2, make([]byte, BlockSize))
	require.Error(t, err)
}

func TestOpenFileRejectsMisalignedSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	dev, err := CreateFile(path, 1)
	require.NoError(t, err)
	require.NoError(t, dev.Close())

	require.NoError(t, os.Truncate(path, BlockSize-1))

	_, err = OpenFile(path)
	require.Error(t, err)
}
