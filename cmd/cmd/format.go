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
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ostafen/blockfs/internal/blockdev"
	"github.com/ostafen/blockfs/internal/mkfs"
	"github.com/ostafen/blockfs/pkg/util/format"
)

func DefineFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "format <image_path> <data_blocks>",
		Short:        "Create a new volume image with the given number of data blocks",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunFormat,
	}
	return cmd
}

func RunFormat(cmd *cobra.Command, args []string) error {
	dataBlocks, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		return fmt.Errorf("invalid data block count %q: %w", args[1], err)
	}

	if err := mkfs.Format(args[0], uint16(dataBlocks)); err != nil {
		return err
	}

	size := format.FormatBytes(int64(dataBlocks) * blockdev.BlockSize)
	fmt.Printf("formatted %s with %d data blocks (%s)\n", args[0], dataBlocks, size)
	return nil
}
