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
	"os"
	"path/filepath"
	"strings"
	"syscall"

	cp "github.com/otiai10/copy"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📦 StageCopy replaces the batch with recursive copies of sources.
//
// Sources are copied in order under their base names. A failing source does
// not stop the remaining ones and earlier copies are kept.
func (s *Store) StageCopy(ctx context.Context, sources []string) error {
	return s.stage(ctx, sources, ActionCopied, s.copyIn)
}

// ✂️ StageCut replaces the batch with sources, removing them from their
// original location.
//
// Sources are renamed into the staging directory. Across filesystems the
// source is copied and then removed. Sources moved before a failure stay
// moved.
func (s *Store) StageCut(ctx context.Context, sources []string) error {
	return s.stage(ctx, sources, ActionCut, s.moveIn)
}

// filesystem calls used by cut, replaced in tests
var (
	rename    = os.Rename
	removeAll = os.RemoveAll
)

type stageFunc func(ctx context.Context, src, dst string) error

func (s *Store) stage(ctx context.Context, sources []string, action Action, fn stageFunc) error {
	logger := zerolog.Ctx(ctx)

	if len(sources) == 0 {
		return ErrNoSources
	}

	resolved := make([]string, 0, len(sources))
	for _, src := range sources {
		abs, err := s.checkSource(src)
		if err != nil {
			return err
		}
		resolved = append(resolved, abs)
	}

	if err := s.Clear(ctx); err != nil {
		return errors.Errorf("clearing staging directory: %w", err)
	}

	var errs []error
	for _, src := range resolved {
		if err := ctx.Err(); err != nil {
			errs = append(errs, errors.Errorf("staging interrupted: %w", err))
			break
		}

		name := filepath.Base(src)
		dst := filepath.Join(s.root, name)

		logger.Debug().Str("source", src).Str("dest", dst).Stringer("action", action).Msg("staging entry")

		err := fn(ctx, src, dst)
		if err != nil {
			err = errors.Errorf("staging %s: %w", src, err)
			errs = append(errs, err)
		}
		s.reporter.ReportEntry(ctx, Result{Name: name, Source: src, Dest: dst, Action: action, Err: err})
	}

	return joinErrors(errs)
}

// 🔍 checkSource resolves src and rejects paths overlapping the staging
// directory, which clearing or copying would otherwise destroy or recurse into.
func (s *Store) checkSource(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", errors.Errorf("empty path: %w", ErrNoSources)
	}

	abs, err := filepath.Abs(src)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", src, err)
	}

	if s.overlaps(abs) {
		return "", errors.Errorf("%s: %w", src, ErrOverlapsStaging)
	}
	return abs, nil
}

func (s *Store) overlaps(path string) bool {
	root := s.root
	if within(path, root) || within(root, path) {
		return true
	}

	// Compare resolved paths too, the staging directory may sit behind a symlink.
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return false
	}
	realPath, err := resolveParent(path)
	if err != nil {
		return false
	}
	return within(realPath, realRoot) || within(realRoot, realPath)
}

// resolveParent resolves symlinks in the directories leading to path but not
// in path itself. A symlink operand is staged as a link, so its target does
// not matter.
func resolveParent(path string) (string, error) {
	dir, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(path)), nil
}

// within reports whether path is parent or lies below it.
func within(path, parent string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (s *Store) copyIn(ctx context.Context, src, dst string) error {
	return copyTree(src, dst)
}

func (s *Store) moveIn(ctx context.Context, src, dst string) error {
	err := rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return errors.Errorf("moving: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("source", src).Msg("cross-device move, falling back to copy and remove")

	if err := copyTree(src, dst); err != nil {
		// keep the source-or-staged invariant for this entry
		if rmErr := removeAll(dst); rmErr != nil {
			zerolog.Ctx(ctx).Debug().Err(rmErr).Str("dest", dst).Msg("removing partial copy")
		}
		return err
	}
	if err := removeAll(src); err != nil {
		return errors.Errorf("removing source: %w", err)
	}
	return nil
}

// 📋 Paste copies every staged entry into dst. The batch is left untouched.
// Existing files in dst are overwritten and existing directories merged.
// dst may contain the staging directory; an entry whose target would land in
// or above it fails with ErrOverlapsStaging.
func (s *Store) Paste(ctx context.Context, dst string) error {
	logger := zerolog.Ctx(ctx)

	abs, err := filepath.Abs(dst)
	if err != nil {
		return errors.Errorf("resolving destination: %w", err)
	}

	entries, err := s.Entries(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, errors.Errorf("pasting interrupted: %w", err))
			break
		}

		target := filepath.Join(abs, e.Name)

		logger.Debug().Str("entry", e.Name).Str("dest", target).Msg("pasting entry")

		err := s.pasteEntry(e, target)
		if err != nil {
			err = errors.Errorf("pasting %s: %w", e.Name, err)
			errs = append(errs, err)
		}
		s.reporter.ReportEntry(ctx, Result{Name: e.Name, Source: e.Path, Dest: target, Action: ActionPasted, Err: err})
	}

	return joinErrors(errs)
}

func (s *Store) pasteEntry(e Entry, target string) error {
	if s.overlaps(target) {
		return errors.Errorf("%s: %w", target, ErrOverlapsStaging)
	}
	return copyTree(e.Path, target)
}

// copyTree copies src to dst the way cp -r does: symlinks are recreated, not
// followed, and permissions are kept.
func copyTree(src, dst string) error {
	err := cp.Copy(src, dst, cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		OnDirExists: func(string, string) cp.DirExistsAction {
			return cp.Merge
		},
		PermissionControl: cp.PerservePermission,
		PreserveTimes:     true,
	})
	if err != nil {
		return errors.Errorf("copying: %w", err)
	}
	return nil
}
