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

package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/cxp/pkg/clipboard"
	"github.com/walteh/cxp/pkg/log"
	"github.com/walteh/cxp/pkg/testutils"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	pterm.DisableStyling()
	os.Exit(m.Run())
}

type fixture struct {
	ctx    context.Context
	opts   Options
	out    *bytes.Buffer
	errOut *bytes.Buffer
	src    string
}

// newFixture returns a store reporting into buffers, plus a source directory
// holding a.txt, b.txt and docs/readme.md
func newFixture(t *testing.T) *fixture {
	t.Helper()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	logger := log.New(out, errOut, zerolog.Disabled)
	ctx := log.NewContext(context.Background(), logger)

	store, err := clipboard.Open(ctx, filepath.Join(t.TempDir(), clipboard.DirName), clipboard.WithReporter(logger))
	require.NoError(t, err, "opening store should succeed")

	src := testutils.WriteTree(t, t.TempDir(), map[string]string{
		"a.txt":          "alpha",
		"b.txt":          "bravo",
		"docs/readme.md": "# readme",
	})

	return &fixture{
		ctx:    ctx,
		opts:   Options{Store: store, Logger: logger},
		out:    out,
		errOut: errOut,
		src:    src,
	}
}

func (f *fixture) path(rel string) string {
	return filepath.Join(f.src, filepath.FromSlash(rel))
}

func (f *fixture) run(t *testing.T, op Operation) error {
	t.Helper()
	f.out.Reset()
	f.errOut.Reset()
	return NewRunner("").Run(f.ctx, op)
}

func TestOperationNames(t *testing.T) {
	opts := Options{}
	tests := []struct {
		op   Operation
		want string
	}{
		{NewCopyOperation(opts, nil), "copy"},
		{NewCutOperation(opts, nil), "cut"},
		{NewPasteOperation(opts, "."), "paste"},
		{NewClearOperation(opts), "clear"},
		{NewListOperation(opts, nil), "list"},
		{NewTreeOperation(opts, nil), "tree"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.Name())
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.opts.Validate())
	assert.Error(t, Options{Logger: f.opts.Logger}.Validate(), "store should be required")
	assert.Error(t, Options{Store: f.opts.Store}.Validate(), "logger should be required")

	err := NewRunner("").Run(f.ctx, NewClearOperation(Options{}))
	require.Error(t, err, "runner should reject incomplete operations")
	assert.Contains(t, err.Error(), "invalid clear operation")
}

func TestCopyPasteRoundTrip(t *testing.T) {
	f := newFixture(t)

	err := f.run(t, NewCopyOperation(f.opts, []string{f.path("a.txt"), f.path("docs")}))
	require.NoError(t, err, "copy should succeed")
	assert.Contains(t, f.out.String(), "a.txt")
	assert.Contains(t, f.out.String(), "copied")
	assert.Contains(t, f.out.String(), "copy: 2 staged, ready to paste")
	assert.FileExists(t, f.path("a.txt"), "copied source should remain")

	dst := t.TempDir()
	require.NoError(t, f.run(t, NewPasteOperation(f.opts, dst)), "paste should succeed")
	assert.Contains(t, f.out.String(), "pasted")

	assert.Equal(t, map[string]string{
		"a.txt":          "alpha",
		"docs/readme.md": "# readme",
	}, testutils.ReadTree(t, dst))

	total, failed := f.opts.Logger.Counts()
	assert.Equal(t, 4, total, "two staged and two pasted entries")
	assert.Zero(t, failed)
}

func TestCutOperation(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, NewCutOperation(f.opts, []string{f.path("b.txt")})), "cut should succeed")
	assert.Contains(t, f.out.String(), "cut: 1 staged, ready to paste")
	assert.NoFileExists(t, f.path("b.txt"), "cut source should be gone")

	entries, err := f.opts.Store.Entries(f.ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.txt", entries[0].Name)
}

func TestStageOperationErrors(t *testing.T) {
	t.Run("no_sources", func(t *testing.T) {
		f := newFixture(t)
		err := f.run(t, NewCopyOperation(f.opts, nil))
		require.ErrorIs(t, err, clipboard.ErrNoSources)
		assert.NotContains(t, f.out.String(), "ready to paste")
	})

	t.Run("missing_source", func(t *testing.T) {
		f := newFixture(t)
		err := f.run(t, NewCopyOperation(f.opts, []string{f.path("a.txt"), f.path("nope")}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "staging 2 paths")
		assert.Contains(t, f.out.String(), "failed")
		assert.NotContains(t, f.out.String(), "ready to paste")

		_, failed := f.opts.Logger.Counts()
		assert.Equal(t, 1, failed)
	})

	t.Run("overlap", func(t *testing.T) {
		f := newFixture(t)
		err := f.run(t, NewCutOperation(f.opts, []string{f.opts.Store.Root()}))
		require.ErrorIs(t, err, clipboard.ErrOverlapsStaging)
		assert.DirExists(t, f.opts.Store.Root(), "staging directory should survive")
	})
}

func TestClearOperation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, NewCopyOperation(f.opts, []string{f.path("a.txt"), f.path("b.txt")})))

	require.NoError(t, f.run(t, NewClearOperation(f.opts)), "clear should succeed")
	assert.Contains(t, f.out.String(), "removed")

	entries, err := f.opts.Store.Entries(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, f.run(t, NewClearOperation(f.opts)), "clearing twice should succeed")
}

func TestListOperation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, NewCopyOperation(f.opts, []string{f.path("a.txt"), f.path("docs")})))

	t.Run("all", func(t *testing.T) {
		require.NoError(t, f.run(t, NewListOperation(f.opts, nil)), "list should succeed")
		out := f.out.String()
		assert.Contains(t, out, "total 13 B")
		assert.Contains(t, out, "a.txt")
		assert.Contains(t, out, "docs")
	})

	t.Run("filtered", func(t *testing.T) {
		require.NoError(t, f.run(t, NewListOperation(f.opts, []string{"*.txt"})))
		out := f.out.String()
		assert.Contains(t, out, "total 5 B")
		assert.NotContains(t, out, "docs")
	})

	t.Run("quiet_still_lists", func(t *testing.T) {
		f.opts.Logger.SetQuiet(true)
		defer f.opts.Logger.SetQuiet(false)

		require.NoError(t, f.run(t, NewListOperation(f.opts, nil)))
		assert.Contains(t, f.out.String(), "a.txt")
	})

	t.Run("invalid_pattern", func(t *testing.T) {
		err := f.run(t, NewListOperation(f.opts, []string{"[x"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "filtering entries")
	})
}

func TestTreeOperation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, NewCopyOperation(f.opts, []string{f.path("a.txt"), f.path("docs")})))

	require.NoError(t, f.run(t, NewTreeOperation(f.opts, nil)), "tree should succeed")
	out := f.out.String()
	assert.Contains(t, out, f.opts.Store.Root())
	assert.Contains(t, out, "readme.md")
	assert.Contains(t, out, "1 directory, 2 files")

	require.NoError(t, f.run(t, NewTreeOperation(f.opts, []string{"a.*"})))
	assert.Contains(t, f.out.String(), "0 directories, 1 file")
}
