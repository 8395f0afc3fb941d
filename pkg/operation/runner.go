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
	"context"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// lockRetry is how often a held lock is polled
const lockRetry = 50 * time.Millisecond

type validator interface {
	Validate() error
}

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	lockPath string
}

// 🏗️ NewRunner creates a new runner. With a non-empty lockPath every
// operation holds an advisory lock on that file while it runs; otherwise
// operations run without any locking.
func NewRunner(lockPath string) *OperationRunner {
	return &OperationRunner{
		lockPath: lockPath,
	}
}

// LockPath returns the advisory lock file for a staging directory. It sits
// next to the directory so it never shows up as a staged entry.
func LockPath(root string) string {
	return root + ".lock"
}

// 🏃 Run executes an operation
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	logger := zerolog.Ctx(ctx).With().Str("operation", op.Name()).Logger()
	ctx = logger.WithContext(ctx)

	if v, ok := op.(validator); ok {
		if err := v.Validate(); err != nil {
			return errors.Errorf("invalid %s operation: %w", op.Name(), err)
		}
	}

	if r.lockPath == "" {
		return r.runUnlocked(ctx, op)
	}
	return r.runLocked(ctx, op)
}

// 🔄 runUnlocked runs an operation without coordination
func (r *OperationRunner) runUnlocked(ctx context.Context, op Operation) error {
	zerolog.Ctx(ctx).Debug().Msg("running operation")
	return op.Execute(ctx)
}

// 🔒 runLocked waits for the advisory lock, then runs the operation
func (r *OperationRunner) runLocked(ctx context.Context, op Operation) error {
	logger := zerolog.Ctx(ctx)

	lock := flock.New(r.lockPath)
	locked, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return errors.Errorf("acquiring lock %s: %w", r.lockPath, err)
	}
	if !locked {
		return errors.Errorf("acquiring lock %s: not acquired", r.lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug().Err(err).Str("lock", r.lockPath).Msg("releasing lock")
		}
	}()

	logger.Debug().Str("lock", r.lockPath).Msg("running operation under lock")
	return op.Execute(ctx)
}
