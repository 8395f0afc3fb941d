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

	"github.com/rs/zerolog"
	"github.com/walteh/cxp/pkg/listing"
	"gitlab.com/tozd/go/errors"
)

// 📜 NewListOperation prints the staged entries with their metadata
func NewListOperation(opts Options, patterns []string) Operation {
	return &listOperation{BaseOperation: NewBaseOperation(opts), patterns: patterns}
}

type listOperation struct {
	BaseOperation
	patterns []string
}

func (op *listOperation) Name() string { return "list" }

func (op *listOperation) Execute(ctx context.Context) error {
	entries, err := op.Store.Entries(ctx)
	if err != nil {
		return errors.Errorf("listing entries: %w", err)
	}

	entries, err = listing.Filter(entries, op.patterns)
	if err != nil {
		return errors.Errorf("filtering entries: %w", err)
	}

	sizes, err := listing.Sizes(ctx, entries)
	if err != nil {
		// entry sizes alone still make a useful listing
		zerolog.Ctx(ctx).Debug().Err(err).Msg("measuring entries")
		sizes = nil
	}

	out, err := listing.Long(entries, sizes)
	if err != nil {
		return err
	}
	op.Logger.Print(out)
	return nil
}

// 🌳 NewTreeOperation prints the staged entries as a tree
func NewTreeOperation(opts Options, patterns []string) Operation {
	return &treeOperation{BaseOperation: NewBaseOperation(opts), patterns: patterns}
}

type treeOperation struct {
	BaseOperation
	patterns []string
}

func (op *treeOperation) Name() string { return "tree" }

func (op *treeOperation) Execute(ctx context.Context) error {
	nodes, err := listing.Collect(ctx, op.Store, op.patterns)
	if err != nil {
		return errors.Errorf("walking entries: %w", err)
	}

	out, err := listing.Tree(op.Store.Root(), nodes)
	if err != nil {
		return err
	}
	op.Logger.Print(out)
	return nil
}
