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

import "context"

// 📊 Action is what happened to a single entry
type Action int

const (
	ActionUnknown Action = iota
	ActionCopied          // Source duplicated into the staging directory
	ActionCut             // Source moved into the staging directory
	ActionPasted          // Entry duplicated into the destination
	ActionRemoved         // Entry deleted from the staging directory
)

// String returns a string representation of Action
func (a Action) String() string {
	switch a {
	case ActionCopied:
		return "copied"
	case ActionCut:
		return "cut"
	case ActionPasted:
		return "pasted"
	case ActionRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one per-entry step of a multi-item operation
type Result struct {
	Name   string // Base name of the entry
	Source string // Where the entry was read from
	Dest   string // Where the entry was written to, empty for removals
	Action Action
	Err    error // Non-nil when the step failed
}

// Failed reports whether the step failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// 📈 Reporter receives every per-entry outcome as it happens
type Reporter interface {
	ReportEntry(ctx context.Context, r Result)
}

type nopReporter struct{}

func (nopReporter) ReportEntry(context.Context, Result) {}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(ctx context.Context, r Result)

// ReportEntry calls f.
func (f ReporterFunc) ReportEntry(ctx context.Context, r Result) {
	f(ctx, r)
}
