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

package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/cxp/pkg/clipboard"
	"gitlab.com/tozd/go/errors"
)

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name       string
		quiet      bool
		op         func(t *testing.T, logger *Logger)
		wantOut    []string
		wantErrOut []string
	}{
		{
			name: "report_copied_entry",
			op: func(t *testing.T, logger *Logger) {
				logger.ReportEntry(context.Background(), clipboard.Result{Name: "a.txt", Action: clipboard.ActionCopied})
			},
			wantOut: []string{
				"  ✓ a.txt                          copied  ",
			},
		},
		{
			name: "report_each_action",
			op: func(t *testing.T, logger *Logger) {
				ctx := context.Background()
				logger.ReportEntry(ctx, clipboard.Result{Name: "cut.txt", Action: clipboard.ActionCut})
				logger.ReportEntry(ctx, clipboard.Result{Name: "pasted", Action: clipboard.ActionPasted})
				logger.ReportEntry(ctx, clipboard.Result{Name: "gone", Action: clipboard.ActionRemoved})
				logger.ReportEntry(ctx, clipboard.Result{Name: "broken", Action: clipboard.ActionCopied, Err: errors.New("boom")})
			},
			wantOut: []string{
				"  ✂ cut.txt                        cut     ",
				"  ✓ pasted                         pasted  ",
				"  - gone                           removed ",
				"  ✗ broken                         failed  ",
			},
		},
		{
			name:  "quiet_drops_successes",
			quiet: true,
			op: func(t *testing.T, logger *Logger) {
				ctx := context.Background()
				logger.ReportEntry(ctx, clipboard.Result{Name: "ok", Action: clipboard.ActionCopied})
				logger.ReportEntry(ctx, clipboard.Result{Name: "bad", Action: clipboard.ActionCopied, Err: errors.New("boom")})
				logger.Success("done")
			},
			wantOut: []string{
				"  ✗ bad                            failed  ",
			},
		},
		{
			name:  "quiet_keeps_listings_and_errors",
			quiet: true,
			op: func(t *testing.T, logger *Logger) {
				logger.Print("listing\n")
				logger.Warning("careful")
				logger.Error("broken")
			},
			wantOut:    []string{"listing"},
			wantErrOut: []string{"⚠️  careful", "❌ broken"},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warningf("warning %s", "message")
				logger.Errorf("error %d", 42)
				logger.Successf("success %s", "message")
			},
			wantOut:    []string{"✅ success message"},
			wantErrOut: []string{"⚠️  warning message", "❌ error 42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			logger := New(&out, &errOut, zerolog.Disabled)
			logger.SetQuiet(tt.quiet)

			tt.op(t, logger)

			assert.Equal(t, tt.wantOut, lines(out.String()), "stdout should match")
			assert.Equal(t, tt.wantErrOut, lines(errOut.String()), "stderr should match")
		})
	}
}

func TestCounts(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, &out, zerolog.Disabled)
	ctx := context.Background()

	logger.ReportEntry(ctx, clipboard.Result{Name: "a", Action: clipboard.ActionCopied})
	logger.ReportEntry(ctx, clipboard.Result{Name: "b", Action: clipboard.ActionCopied, Err: errors.New("boom")})
	logger.ReportEntry(ctx, clipboard.Result{Name: "c", Action: clipboard.ActionPasted})

	total, failed := logger.Counts()
	assert.Equal(t, 3, total, "all entries should be counted")
	assert.Equal(t, 1, failed, "failures should be counted")
}

func TestStructuredOutput(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var out, errOut bytes.Buffer
	logger := New(&out, &errOut, zerolog.DebugLevel)

	logger.Zerolog().Debug().Str("entry", "a.txt").Msg("staging entry")
	logger.ReportEntry(context.Background(), clipboard.Result{Name: "b.txt", Action: clipboard.ActionCopied})

	assert.Contains(t, errOut.String(), "staging entry", "structured events should go to errOut")
	assert.Contains(t, errOut.String(), "entry=a.txt")
	assert.Contains(t, errOut.String(), "entry operation")
	assert.NotContains(t, out.String(), "staging entry", "structured events should stay off out")
	assert.Equal(t, []string{"  ✓ b.txt                          copied  "}, lines(out.String()))
}

func TestContext(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		var out bytes.Buffer
		logger := New(&out, &out, zerolog.DebugLevel)
		ctx := NewContext(context.Background(), logger)

		assert.Same(t, logger, FromContext(ctx), "logger should be retrievable")
		assert.NotEqual(t, zerolog.Disabled, zerolog.Ctx(ctx).GetLevel(), "zerolog logger should be attached")
	})

	t.Run("missing", func(t *testing.T) {
		logger := FromContext(context.Background())
		require.NotNil(t, logger, "fallback logger should be returned")

		// must not panic or write anywhere
		logger.Success("ignored")
		logger.Print("ignored")
		logger.ReportEntry(context.Background(), clipboard.Result{Name: "x"})
	})
}

func TestLoggerAsReporter(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var out bytes.Buffer
	logger := New(&out, &out, zerolog.Disabled)

	var reporter clipboard.Reporter = logger
	reporter.ReportEntry(context.Background(), clipboard.Result{Name: "via-interface", Action: clipboard.ActionPasted})

	assert.Contains(t, out.String(), "via-interface")
}
