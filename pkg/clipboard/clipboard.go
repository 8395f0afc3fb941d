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

package clipboard

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/cxp/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// DirName is the subdirectory of the per-user data directory that holds the batch.
const DirName = "cxp"

var (
	// ErrNoSources is returned when a stage operation is given no paths.
	ErrNoSources = errors.Base("no paths to stage")
	// ErrOverlapsStaging is returned when a source is the staging directory,
	// lives inside it, or contains it.
	ErrOverlapsStaging = errors.Base("source overlaps the staging directory")
)

// 📋 Entry describes one object staged directly under the staging directory
type Entry struct {
	Name    string      // Base name, unique within the staging directory
	Path    string      // Absolute path inside the staging directory
	Mode    fs.FileMode // Mode as reported by lstat
	Size    int64       // Size of the entry itself, not its subtree
	ModTime time.Time   // Last modification time
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Mode.IsDir()
}

// 🗂️ Store is a single-slot clipboard backed by one directory on disk.
// The directory contents are the whole state; nothing is kept in memory.
type Store struct {
	root     string
	reporter Reporter
}

// Option configures a Store
type Option func(*Store)

// WithReporter sets the reporter notified of every per-entry outcome
func WithReporter(r Reporter) Option {
	return func(s *Store) {
		s.reporter = r
	}
}

// 🏭 Open returns a store rooted at root, creating the directory if needed.
//
// A failure to create the directory is only logged: it resurfaces as an I/O
// error on the first operation that touches the directory.
func Open(ctx context.Context, root string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.Errorf("staging directory is required")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving staging directory: %w", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("root", abs).Msg("creating staging directory")
	}

	s := &Store{root: abs, reporter: nopReporter{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// 🏠 OpenDefault opens the store under the per-user data directory.
func OpenDefault(ctx context.Context, opts ...Option) (*Store, error) {
	dataHome, err := config.DataHome()
	if err != nil {
		return nil, errors.Errorf("locating data directory: %w", err)
	}
	return Open(ctx, filepath.Join(dataHome, DirName), opts...)
}

// Root returns the absolute path of the staging directory.
func (s *Store) Root() string {
	return s.root
}

// 📜 Entries returns the staged entries sorted by name, hidden ones included.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	dirents, err := os.ReadDir(s.root)
	if err != nil {
		return nil, errors.Errorf("reading staging directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		info, err := d.Info()
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", d.Name(), err)
		}
		entries = append(entries, Entry{
			Name:    d.Name(),
			Path:    filepath.Join(s.root, d.Name()),
			Mode:    info.Mode(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	zerolog.Ctx(ctx).Debug().Str("root", s.root).Int("entries", len(entries)).Msg("read staging directory")
	return entries, nil
}

// WalkFunc is called for every object below the staging directory. rel is
// slash separated and relative to the staging directory.
type WalkFunc func(rel string, d fs.DirEntry) error

// 🌳 Walk visits every object below the staging directory in lexical order,
// depth first. Symlinked directories are not descended into.
func (s *Store) Walk(ctx context.Context, fn WalkFunc) error {
	if _, err := os.Stat(s.root); err != nil {
		return errors.Errorf("reading staging directory: %w", err)
	}

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == s.root {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), d)
	})
	if err != nil {
		return errors.Errorf("walking staging directory: %w", err)
	}
	return nil
}

// 🧹 Clear removes every staged entry. All entries are attempted; the
// returned error joins every failure.
func (s *Store) Clear(ctx context.Context) error {
	entries, err := s.Entries(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, errors.Errorf("clearing interrupted: %w", err))
			break
		}

		err := os.RemoveAll(e.Path)
		if err != nil {
			err = errors.Errorf("removing %s: %w", e.Name, err)
			errs = append(errs, err)
		}
		s.reporter.ReportEntry(ctx, Result{Name: e.Name, Source: e.Path, Action: ActionRemoved, Err: err})
	}

	return joinErrors(errs)
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
