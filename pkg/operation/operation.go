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

	"github.com/walteh/cxp/pkg/clipboard"
	"github.com/walteh/cxp/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one clipboard verb, executed once per invocation
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute performs the operation against the store
	Execute(ctx context.Context) error
}

// 🔧 Options contains what every operation needs
type Options struct {
	// Store is the clipboard the operation acts on
	Store *clipboard.Store
	// Logger receives user-facing output
	Logger *log.Logger
}

// Validate checks that the required options are set.
func (o Options) Validate() error {
	if o.Store == nil {
		return errors.Errorf("store is required")
	}
	if o.Logger == nil {
		return errors.Errorf("logger is required")
	}
	return nil
}

// BaseOperation holds the fields shared by every operation
type BaseOperation struct {
	Store  *clipboard.Store
	Logger *log.Logger
}

// Validate checks that the operation was built with complete options.
func (b BaseOperation) Validate() error {
	return Options{Store: b.Store, Logger: b.Logger}.Validate()
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{
		Store:  opts.Store,
		Logger: opts.Logger,
	}
}

// 📦 NewCopyOperation stages sources as copies
func NewCopyOperation(opts Options, sources []string) Operation {
	return &stageOperation{BaseOperation: NewBaseOperation(opts), sources: sources, cut: false}
}

// ✂️ NewCutOperation stages sources by moving them
func NewCutOperation(opts Options, sources []string) Operation {
	return &stageOperation{BaseOperation: NewBaseOperation(opts), sources: sources, cut: true}
}

type stageOperation struct {
	BaseOperation
	sources []string
	cut     bool
}

func (op *stageOperation) Name() string {
	if op.cut {
		return "cut"
	}
	return "copy"
}

func (op *stageOperation) Execute(ctx context.Context) error {
	stage := op.Store.StageCopy
	if op.cut {
		stage = op.Store.StageCut
	}

	if err := stage(ctx, op.sources); err != nil {
		return errors.Errorf("staging %d paths: %w", len(op.sources), err)
	}

	op.Logger.Successf("%s: %d staged, ready to paste", op.Name(), len(op.sources))
	return nil
}

// 📋 NewPasteOperation pastes the batch into dst
func NewPasteOperation(opts Options, dst string) Operation {
	return &pasteOperation{BaseOperation: NewBaseOperation(opts), dst: dst}
}

type pasteOperation struct {
	BaseOperation
	dst string
}

func (op *pasteOperation) Name() string { return "paste" }

func (op *pasteOperation) Execute(ctx context.Context) error {
	if err := op.Store.Paste(ctx, op.dst); err != nil {
		return errors.Errorf("pasting into %s: %w", op.dst, err)
	}
	return nil
}

// 🧹 NewClearOperation empties the batch
func NewClearOperation(opts Options) Operation {
	return &clearOperation{BaseOperation: NewBaseOperation(opts)}
}

type clearOperation struct {
	BaseOperation
}

func (op *clearOperation) Name() string { return "clear" }

func (op *clearOperation) Execute(ctx context.Context) error {
	if err := op.Store.Clear(ctx); err != nil {
		return errors.Errorf("emptying staging directory: %w", err)
	}
	return nil
}
