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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ostafen/blockfs/internal/blockdev"
	"github.com/ostafen/blockfs/internal/blockfs"
	"github.com/ostafen/blockfs/internal/logger"
)

func DefineShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "shell <image_path>",
		Short:        "Mount an image and drive it interactively; the core is the only thing this talks to",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunShell,
	}
	cmd.Flags().Bool("strict-lseek", false, "use the legacy by-descriptor lseek bound check instead of the corrected by-name one")
	return cmd
}

func RunShell(cmd *cobra.Command, args []string) error {
	dev, err := blockdev.OpenFile(args[0])
	if err != nil {
		return err
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	log := logger.New(os.Stderr, logger.ParseLevel(logLevel))

	opts := []blockfs.Option{blockfs.WithLogger(log)}
	if strict, _ := cmd.Flags().GetBool("strict-lseek"); strict {
		opts = append(opts, blockfs.WithStrictLegacyLseek())
	}

	vol, err := blockfs.Mount(dev, opts...)
	if err != nil {
		dev.Close()
		return err
	}

	sh := &shell{vol: vol, out: os.Stdout}
	return sh.run(os.Stdin)
}

// shell is a minimal REPL over blockfs.Volume: it invokes the core and
// prints its results, nothing more. It is deliberately dumb — the core
// does all of the work described in the design.
type shell struct {
	vol *blockfs.Volume
	out *os.File
}

func (s *shell) run(in *os.File) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmdName := fields[0]
		cmdArgs := fields[1:]

		if cmdName == "quit" || cmdName == "exit" {
			return s.vol.Unmount()
		}

		if err := s.dispatch(cmdName, cmdArgs); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (s *shell) dispatch(name string, args []string) error {
	switch name {
	case "info":
		return s.vol.Info(s.out)
	case "ls":
		return s.vol.Ls(s.out)
	case "create":
		return s.expectArgs(args, 1, func(a []string) error { return s.vol.Create(a[0]) })
	case "rm", "delete":
		return s.expectArgs(args, 1, func(a []string) error { return s.vol.Delete(a[0]) })
	case "open":
		return s.expectArgs(args, 1, func(a []string) error {
			fd, err := s.vol.Open(a[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "fd=%d\n", fd)
			return nil
		})
	case "close":
		return s.expectArgs(args, 1, func(a []string) error {
			fd, err := strconv.Atoi(a[0])
			if err != nil {
				return err
			}
			return s.vol.Close(fd)
		})
	case "stat":
		return s.expectArgs(args, 1, func(a []string) error {
			fd, err := strconv.Atoi(a[0])
			if err != nil {
				return err
			}
			size, err := s.vol.Stat(fd)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "size=%d\n", size)
			return nil
		})
	case "lseek":
		return s.expectArgs(args, 2, func(a []string) error {
			fd, err := strconv.Atoi(a[0])
			if err != nil {
				return err
			}
			offset, err := strconv.ParseUint(a[1], 10, 32)
			if err != nil {
				return err
			}
			return s.vol.Lseek(fd, uint32(offset))
		})
	case "write":
		return s.expectArgs(args, 2, func(a []string) error {
			fd, err := strconv.Atoi(a[0])
			if err != nil {
				return err
			}
			data := []byte(strings.Join(a[1:], " "))
			n, err := s.vol.Write(fd, data, len(data))
			fmt.Fprintf(s.out, "wrote=%d\n", n)
			return err
		})
	case "read":
		return s.expectArgs(args, 2, func(a []string) error {
			fd, err := strconv.Atoi(a[0])
			if err != nil {
				return err
			}
			count, err := strconv.Atoi(a[1])
			if err != nil {
				return err
			}
			buf := make([]byte, count)
			n, err := s.vol.Read(fd, buf, count)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "read=%d data=%q\n", n, buf[:n])
			return nil
		})
	case "cat":
		return s.expectArgs(args, 1, func(a []string) error { return s.cat(a[0]) })
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}

func (s *shell) expectArgs(args []string, n int, fn func([]string) error) error {
	if len(args) < n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return fn(args)
}

// cat dumps the full contents of name to stdout by going through the
// ordinary Open/Read/Close sequence a real caller would use.
func (s *shell) cat(name string) error {
	fd, err := s.vol.Open(name)
	if err != nil {
		return err
	}
	defer s.vol.Close(fd)

	size, err := s.vol.Stat(fd)
	if err != nil {
		return err
	}

	buf := make([]byte, size)
	n, err := s.vol.Read(fd, buf, int(size))
	if err != nil {
		return err
	}

	_, err = s.out.Write(buf[:n])
	return err
}
