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
	"path"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/walteh/cxp/pkg/clipboard"
	"gitlab.com/tozd/go/errors"
)

// 🌳 Node is one object below the staging directory
type Node struct {
	Rel  string      // Slash separated path relative to the staging directory
	Mode fs.FileMode // Type bits of the object
	Link string      // Symlink target, if any
}

// Depth returns how deep the node sits, 0 for staged entries.
func (n Node) Depth() int {
	return strings.Count(n.Rel, "/")
}

// Top returns the name of the staged entry the node belongs to.
func (n Node) Top() string {
	top, _, _ := strings.Cut(n.Rel, "/")
	return top
}

// 🔍 Collect walks the store and returns its nodes in walk order, keeping
// only subtrees whose staged entry matches patterns.
func Collect(ctx context.Context, s *clipboard.Store, patterns []string) ([]Node, error) {
	if err := validatePatterns(patterns); err != nil {
		return nil, err
	}

	var nodes []Node
	err := s.Walk(ctx, func(rel string, d fs.DirEntry) error {
		n := Node{Rel: rel, Mode: d.Type()}
		if len(patterns) > 0 && !matchAny(patterns, n.Top()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			n.Link = readlink(filepath.Join(s.Root(), filepath.FromSlash(rel)))
		}
		nodes = append(nodes, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// 🌳 Tree renders nodes below a root label like `tree -a`, with a trailing
// directory and file count.
func Tree(root string, nodes []Node) (string, error) {
	var b strings.Builder
	b.WriteString(root)
	b.WriteString("\n")

	var dirs, files int
	list := make(pterm.LeveledList, 0, len(nodes))
	for _, n := range nodes {
		if n.Mode.IsDir() {
			dirs++
		} else {
			files++
		}

		text := path.Base(n.Rel)
		if n.Link != "" {
			text += " -> " + n.Link
		}
		list = append(list, pterm.LeveledListItem{Level: n.Depth(), Text: text})
	}

	if len(list) > 0 {
		out, err := pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(list)).Srender()
		if err != nil {
			return "", errors.Errorf("rendering tree: %w", err)
		}
		b.WriteString(strings.TrimRight(out, "\n"))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s, %s\n", plural(dirs, "directory", "directories"), plural(files, "file", "files"))
	return b.String(), nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
