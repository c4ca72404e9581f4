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
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ostafen/blockfs/internal/blockdev"
	"github.com/ostafen/blockfs/internal/blockfs"
	"github.com/ostafen/blockfs/internal/fuseadapter"
	"github.com/ostafen/blockfs/internal/logger"
)

func DefineFuseMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mount <image_path> <mountpoint>",
		Short:        "Mount a volume image as a live, read-write FUSE file system",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunFuseMount,
	}
	return cmd
}

func RunFuseMount(cmd *cobra.Command, args []string) error {
	dev, err := blockdev.OpenFile(args[0])
	if err != nil {
		return err
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	log := logger.New(os.Stderr, logger.ParseLevel(logLevel))

	vol, err := blockfs.Mount(dev, blockfs.WithLogger(log))
	if err != nil {
		dev.Close()
		return err
	}
	defer vol.Unmount()

	return fuseadapter.Mount(args[1], vol)
}
