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

// Package fuseadapter presents a mounted blockfs.Volume as a real, flat,
// single-directory FUSE filesystem, so it can be browsed and edited with
// ordinary file tools instead of the core's API. It is purely an optional
// frontend: the volume's own concurrency model (one caller at a time, §5
// of the design) is preserved by serializing every FUSE callback through a
// single mutex before it ever reaches the core.
package fuseadapter

import (
	"context"
	"os"
	"sync"
	"time"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	"github.com/ostafen/blockfs/internal/blockfs"
)

// VolumeFS bridges a *blockfs.Volume into bazil.org/fuse's Dir/File model.
type VolumeFS struct {
	vol *blockfs.Volume
	mu  sync.Mutex
}

func (f *VolumeFS) Root() (fusefs.Node, error) {
	return &dir{fs: f}, nil
}

// dir implements the single flat root directory: Attr, Lookup, ReadDirAll,
// Create, Remove.
type dir struct {
	fs *VolumeFS
}

func (*dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0755
	return nil
}

func (d *dir) Lookup(ctx context.Context, name string) (fusefs.Node, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	size, err := d.fs.statByName(name)
	if err != nil {
		return nil, fuse.ENOENT
	}
	return &file{fs: d.fs, name: name, size: size}, nil
}

func (d *dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	names := d.fs.vol.Names()
	dirEntries := make([]fuse.Dirent, len(names))
	for i, name := range names {
		dirEntries[i] = fuse.Dirent{
			Inode: uint64(i + 1),
			Name:  name,
			Type:  fuse.DT_File,
		}
	}
	return dirEntries, nil
}

func (d *dir) Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) (fusefs.Node, fusefs.Handle, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	if err := d.fs.vol.Create(req.Name); err != nil {
		return nil, nil, fuse.EEXIST
	}
	f := &file{fs: d.fs, name: req.Name, size: 0}
	return f, f, nil
}

func (d *dir) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	if err := d.fs.vol.DeleteStrict(req.Name); err != nil {
		return fuse.ENOENT
	}
	return nil
}

// file implements Attr and Open; Read and Write live on the handle that
// Open returns. Each handle from Open holds its own blockfs descriptor so
// concurrent readers/writers of the same name keep independent cursors,
// exactly like the core's native Open contract.
type file struct {
	fs   *VolumeFS
	name string
	size uint32
}

func (f *file) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0644
	a.Size = uint64(f.size)
	a.Mtime = time.Now()
	return nil
}

func (f *file) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fusefs.Handle, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	fd, err := f.fs.vol.Open(f.name)
	if err != nil {
		return nil, fuse.ENOENT
	}
	return &handle{fs: f.fs, fd: fd}, nil
}

// handle is a live blockfs descriptor borrowed for the lifetime of one FUSE
// open/release pair.
type handle struct {
	fs *VolumeFS
	fd int
}

func (h *handle) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	if err := h.fs.vol.Lseek(h.fd, uint32(req.Offset)); err != nil {
		resp.Data = nil
		return nil
	}

	buf := make([]byte, req.Size)
	n, err := h.fs.vol.Read(h.fd, buf, req.Size)
	if err != nil {
		return err
	}
	resp.Data = buf[:n]
	return nil
}

func (h *handle) Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	if err := h.fs.vol.Lseek(h.fd, uint32(req.Offset)); err != nil {
		if err := h.extendTo(req.Offset); err != nil {
			return err
		}
	}

	n, err := h.fs.vol.Write(h.fd, req.Data, len(req.Data))
	resp.Size = n
	return err
}

// New wraps vol in a VolumeFS ready to be handed to bazil.org/fuse's
// fs.New/Serve.
func New(vol *blockfs.Volume) *VolumeFS {
	return &VolumeFS{vol: vol}
}

// extendTo seeks past the file's current size by writing zero bytes up to
// offset; bazil's Write contract permits sparse-looking appends that a
// naive client may issue past EOF, which the core's Lseek otherwise
// rejects outright.
func (h *handle) extendTo(offset int64) error {
	size, err := h.fs.vol.Stat(h.fd)
	if err != nil {
		return err
	}
	if err := h.fs.vol.Lseek(h.fd, size); err != nil {
		return err
	}
	pad := int(offset - int64(size))
	if pad <= 0 {
		return nil
	}
	_, err = h.fs.vol.Write(h.fd, make([]byte, pad), pad)
	return err
}

func (h *handle) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()
	return h.fs.vol.Close(h.fd)
}

func (f *VolumeFS) statByName(name string) (uint32, error) {
	fd, err := f.vol.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.vol.Close(fd)
	return f.vol.Stat(fd)
}

