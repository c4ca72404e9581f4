//go:build linux
// +build linux

// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package fuseadapter

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	"github.com/ostafen/blockfs/internal/blockfs"
	utilos "github.com/ostafen/blockfs/pkg/util/os"
)

// Mount mounts vol as a FUSE filesystem at mountpoint and blocks until a
// termination signal successfully unmounts it.
func Mount(mountpoint string, vol *blockfs.Volume) error {
	created, err := utilos.EnsureDir(mountpoint, true)
	if err != nil {
		return err
	}
	if created {
		defer os.Remove(mountpoint)
	}

	c, err := fuse.Mount(mountpoint)
	if err != nil {
		return err
	}
	defer c.Close()

	volFS := New(vol)

	go func() {
		srv := fusefs.New(c, nil)
		if err := srv.Serve(volFS); err != nil {
			log.Fatalf("fuseadapter: serve error: %v", err)
		}
	}()
	return waitForUnmount(mountpoint)
}

func waitForUnmount(mountpoint string) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	log.Println("fuseadapter: waiting for termination signal...")

	const maxUnmountRetries = 3

	attempts := 0
	for sig := range sigc {
		log.Printf("fuseadapter: signal received: %v", sig)

		if attempts >= maxUnmountRetries {
			log.Fatalf("fuseadapter: exceeded %d unmount retries for %s, exiting forcefully", maxUnmountRetries, mountpoint)
		}

		log.Printf("fuseadapter: attempting unmount of %s (attempt %d/%d)", mountpoint, attempts+1, maxUnmountRetries)
		err := fuse.Unmount(mountpoint)
		if err == nil {
			log.Println("fuseadapter: unmounted successfully")
			return nil
		}

		attempts++
		log.Printf("fuseadapter: unmount failed: %v, waiting for another signal", err)
	}
	return nil
}
