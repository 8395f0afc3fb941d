// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package listing

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/walteh/cxp/pkg/clipboard"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

const timeLayout = "Jan _2 15:04"

// sizeWorkers bounds how many entries are measured at once
const sizeWorkers = 4

// 🔍 Filter keeps the entries whose name matches any of patterns. No
// patterns keeps everything.
func Filter(entries []clipboard.Entry, patterns []string) ([]clipboard.Entry, error) {
	if len(patterns) == 0 {
		return entries, nil
	}
	if err := validatePatterns(patterns); err != nil {
		return nil, err
	}

	out := make([]clipboard.Entry, 0, len(entries))
	for _, e := range entries {
		if matchAny(patterns, e.Name) {
			out = append(out, e)
		}
	}
	return out, nil
}

func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid pattern %q", p)
		}
	}
	return nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		// patterns are validated up front
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// 📏 Sizes returns the total size of regular files below each directory
// entry, keyed by entry name. Other entries report their own size.
func Sizes(ctx context.Context, entries []clipboard.Entry) (map[string]int64, error) {
	var mu sync.Mutex
	sizes := make(map[string]int64, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sizeWorkers)

	for _, e := range entries {
		if !e.IsDir() {
			mu.Lock()
			sizes[e.Name] = e.Size
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			total, err := treeSize(ctx, e.Path)
			if err != nil {
				return errors.Errorf("measuring %s: %w", e.Name, err)
			}
			mu.Lock()
			sizes[e.Name] = total
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sizes, nil
}

func treeSize(ctx context.Context, root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// 📜 Long renders entries like `ls -alA`: mode, size, modification time and
// name, with symlink targets. sizes may be nil.
func Long(entries []clipboard.Entry, sizes map[string]int64) (string, error) {
	var b strings.Builder

	var total int64
	for _, e := range entries {
		total += sizeOf(e, sizes)
	}
	fmt.Fprintf(&b, "total %s\n", humanSize(total))

	if len(entries) == 0 {
		return b.String(), nil
	}

	data := pterm.TableData{{"Mode", "Size", "Modified", "Name"}}
	for _, e := range entries {
		data = append(data, []string{
			e.Mode.String(),
			humanSize(sizeOf(e, sizes)),
			e.ModTime.Format(timeLayout),
			displayName(e.Name, e.Path, e.Mode),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering table: %w", err)
	}
	b.WriteString(table)
	b.WriteString("\n")
	return b.String(), nil
}

func sizeOf(e clipboard.Entry, sizes map[string]int64) int64 {
	if s, ok := sizes[e.Name]; ok {
		return s
	}
	return e.Size
}

func displayName(name, path string, mode fs.FileMode) string {
	if mode&fs.ModeSymlink == 0 {
		return name
	}
	target := readlink(path)
	if target == "" {
		return name
	}
	return name + " -> " + target
}

func readlink(path string) string {
	target, err := os.Readlink(path)
	if err != nil {
		return ""
	}
	return target
}

// humanSize formats n bytes with a binary unit suffix
func humanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
