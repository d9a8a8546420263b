package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// appName is the bracket prefix on every log line.
const appName = "rustavail"

// ConsoleHandler formats records as "[rustavail][LEVEL] message k=v".
//
// Design decision: we implement slog.Handler directly instead of
// post-processing TextHandler output because the bracket-prefix format
// has no structured equivalent, and the handler is small enough that
// owning it outright is simpler than rewriting another handler's lines.
type ConsoleHandler struct {
	w      io.Writer
	level  slog.Level
	attrs  []slog.Attr
	groups []string

	// mu guards w; handlers may be used from multiple goroutines.
	mu *sync.Mutex
}

// NewConsoleHandler creates a ConsoleHandler writing to w at the given
// minimum level.
func NewConsoleHandler(w io.Writer, level slog.Level) *ConsoleHandler {
	return &ConsoleHandler{
		w:     w,
		level: level,
		mu:    &sync.Mutex{},
	}
}

// Enabled reports whether records at the given level are emitted.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes one record.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString("[" + appName + "][" + r.Level.String() + "] ")
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		appendAttr(&sb, "", a)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// appendAttr writes one attribute as " key=value" with an optional
// group prefix.
func appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	fmt.Fprintf(sb, " %s=%v", key, a.Value.Resolve().Any())
}

// WithAttrs returns a handler that includes attrs on every record.
// Keys are qualified with the group prefix in effect at bind time.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup returns a handler that prefixes attribute keys with name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// NewLogger creates the tool's console logger. Verbose runs log
// everything down to debug; quiet runs only info and above.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(NewConsoleHandler(w, level))
}
