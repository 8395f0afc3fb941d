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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/cxp/pkg/clipboard"
)

// 🎨 Display configuration
const (
	entryIndent = 2  // spaces to indent entry lines
	nameWidth   = 30 // Base width for entry names
	actionWidth = 8  // Width for the action text
)

// 🎯 Logger prints user-facing lines and mirrors them to zerolog
type Logger struct {
	zlog   zerolog.Logger
	out    io.Writer // listings, per-entry and success lines
	errOut io.Writer // warnings and errors
	quiet  bool      // drop per-entry and success lines
	mu     sync.Mutex

	entries int
	failed  int
}

// 🏭 New creates a new logger. Structured events go to errOut at level.
func New(out, errOut io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: errOut, NoColor: color.NoColor}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:   zlog,
		out:    out,
		errOut: errOut,
	}
}

// SetQuiet drops per-entry and success lines. Listings, warnings and errors
// are still printed.
func (l *Logger) SetQuiet(quiet bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quiet = quiet
}

// Zerolog returns the structured logger backing l.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a logger discarding
// everything when none is set
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return &Logger{zlog: zerolog.Nop(), out: io.Discard, errOut: io.Discard}
	}
	return logger
}

// 🎯 NewContext adds the logger, and its zerolog logger, to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatResult formats one per-entry outcome for display
func formatResult(r clipboard.Result) string {
	var symbol string
	var actionColor color.Attribute
	switch {
	case r.Failed():
		symbol = color.RedString("✗")
		actionColor = color.FgRed
	case r.Action == clipboard.ActionRemoved:
		symbol = color.YellowString("-")
		actionColor = color.FgYellow
	case r.Action == clipboard.ActionCut:
		symbol = color.MagentaString("✂")
		actionColor = color.FgMagenta
	default:
		symbol = color.GreenString("✓")
		actionColor = color.FgGreen
	}

	action := r.Action.String()
	if r.Failed() {
		action = "failed"
	}

	return fmt.Sprintf("%*s%s %-*s %s",
		entryIndent, "",
		symbol,
		nameWidth, r.Name,
		color.New(actionColor).Sprintf("%-*s", actionWidth, action))
}

// 📝 ReportEntry logs one per-entry outcome of a clipboard operation
func (l *Logger) ReportEntry(ctx context.Context, r clipboard.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries++
	if r.Failed() {
		l.failed++
	}

	if !l.quiet || r.Failed() {
		fmt.Fprintln(l.out, formatResult(r))
	}

	l.zlog.Debug().
		Err(r.Err).
		Str("entry", r.Name).
		Str("source", r.Source).
		Str("dest", r.Dest).
		Stringer("action", r.Action).
		Msg("entry operation")
}

// Counts returns how many entries were reported and how many of them failed.
func (l *Logger) Counts() (total, failed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries, l.failed
}

// 📝 Print writes preformatted output, such as a listing
func (l *Logger) Print(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, s)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.quiet {
		fmt.Fprintf(l.out, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	}
	l.zlog.Debug().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.errOut, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.errOut, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}
