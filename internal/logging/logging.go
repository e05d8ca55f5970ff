// Package logging sets up slog for deskfolio: a console handler for the CLI
// and a bounded in-memory ring the TUI log viewer reads from.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/phsym/console-slog"
)

// ParseLevel maps debug, info, warn and error to a slog level. An empty
// string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// NewConsole returns a colored console handler writing to w.
func NewConsole(w io.Writer, level slog.Leveler) slog.Handler {
	return console.NewHandler(w, &console.HandlerOptions{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
}

// InitLogger installs a console logger on stderr as the slog default.
func InitLogger(level slog.Level) *slog.Logger {
	logger := slog.New(NewConsole(os.Stderr, level))
	slog.SetDefault(logger)
	return logger
}

// Entry is one captured log record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   string
}

// String formats e the way the log viewer shows it.
func (e Entry) String() string {
	s := e.Time.Format("15:04:05") + " " + e.Level.String() + " " + e.Message
	if e.Attrs != "" {
		s += " " + e.Attrs
	}
	return s
}

// Ring is a slog.Handler that keeps the last Cap records in memory. Handlers
// derived with WithAttrs and WithGroup share the buffer.
type Ring struct {
	buf   *ringBuffer
	level slog.Leveler
	attrs []slog.Attr
	group string
}

type ringBuffer struct {
	mu      sync.Mutex
	entries []Entry
	cap     int
	seq     uint64
}

// NewRing creates a ring holding up to capacity records at or above level.
func NewRing(capacity int, level slog.Leveler) *Ring {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Ring{
		buf:   &ringBuffer{cap: max(1, capacity)},
		level: level,
	}
}

// Enabled implements slog.Handler.
func (r *Ring) Enabled(_ context.Context, l slog.Level) bool {
	return l >= r.level.Level()
}

// Handle implements slog.Handler.
func (r *Ring) Handle(_ context.Context, rec slog.Record) error {
	var sb strings.Builder
	write := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		key := a.Key
		if r.group != "" {
			key = r.group + "." + key
		}
		sb.WriteString(key + "=" + a.Value.Resolve().String())
	}
	for _, a := range r.attrs {
		write(a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})

	r.buf.add(Entry{Time: rec.Time, Level: rec.Level, Message: rec.Message, Attrs: sb.String()})
	return nil
}

// WithAttrs implements slog.Handler.
func (r *Ring) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *r
	c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], attrs...)
	return &c
}

// WithGroup implements slog.Handler.
func (r *Ring) WithGroup(name string) slog.Handler {
	if name == "" {
		return r
	}
	c := *r
	if c.group != "" {
		name = c.group + "." + name
	}
	c.group = name
	return &c
}

func (b *ringBuffer) add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
	if len(b.entries) > b.cap {
		b.entries = b.entries[len(b.entries)-b.cap:]
	}
	b.seq++
}

// Entries returns a copy of the buffered records, oldest first.
func (r *Ring) Entries() []Entry {
	r.buf.mu.Lock()
	defer r.buf.mu.Unlock()
	out := make([]Entry, len(r.buf.entries))
	copy(out, r.buf.entries)
	return out
}

// Len returns the number of buffered records.
func (r *Ring) Len() int {
	r.buf.mu.Lock()
	defer r.buf.mu.Unlock()
	return len(r.buf.entries)
}

// Seq increases with every record, including ones that pushed older records
// out. The log viewer uses it to notice new output.
func (r *Ring) Seq() uint64 {
	r.buf.mu.Lock()
	defer r.buf.mu.Unlock()
	return r.buf.seq
}

// Clear drops every buffered record.
func (r *Ring) Clear() {
	r.buf.mu.Lock()
	defer r.buf.mu.Unlock()
	r.buf.entries = nil
}

// Fanout sends each record to every handler that has it enabled.
type Fanout []slog.Handler

// Enabled implements slog.Handler.
func (f Fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

// Handle implements slog.Handler.
func (f Fanout) Handle(ctx context.Context, rec slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, rec.Level) {
			continue
		}
		if err := h.Handle(ctx, rec.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WithAttrs implements slog.Handler.
func (f Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(Fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

// WithGroup implements slog.Handler.
func (f Fanout) WithGroup(name string) slog.Handler {
	out := make(Fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
