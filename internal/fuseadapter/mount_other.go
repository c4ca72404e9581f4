//go:build !linux
// +build !linux

package fuseadapter

import (
	"fmt"

	"github.com/ostafen/blockfs/internal/blockfs"
)

// Mount is unsupported outside Linux, matching bazil.org/fuse's own
// platform coverage for this project's target use case.
func Mount(mountpoint string, vol *blockfs.Volume) error {
	return fmt.Errorf("fuseadapter: FUSE mount is only supported on Linux")
}
