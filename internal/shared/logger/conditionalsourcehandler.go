package logger

import (
	"context"
	"log/slog"
	"runtime"
)

type conditionalSourceHandler struct {
	handler    slog.Handler
	showSource map[slog.Level]bool
}

// NewConditionalSourceHandler wraps a handler so that source location is
// attached only for the given levels. The wrapped handler must be built
// with AddSource disabled; this wrapper adds the attribute itself.
func NewConditionalSourceHandler(handler slog.Handler, levels ...slog.Level) slog.Handler {
	m := make(map[slog.Level]bool, len(levels))
	for _, l := range levels {
		m[l] = true
	}
	return &conditionalSourceHandler{handler: handler, showSource: m}
}

func (h *conditionalSourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.showSource[r.Level] {
		// Skip this frame plus the slog internals above it.
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		f, _ := runtime.CallersFrames(pcs[:]).Next()
		r.AddAttrs(slog.Attr{
			Key: slog.SourceKey,
			Value: slog.AnyValue(&slog.Source{
				Function: f.Function,
				File:     f.File,
				Line:     f.Line,
			}),
		})
	}
	return h.handler.Handle(ctx, r)
}

func (h *conditionalSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &conditionalSourceHandler{handler: h.handler.WithAttrs(attrs), showSource: h.showSource}
}

func (h *conditionalSourceHandler) WithGroup(name string) slog.Handler {
	return &conditionalSourceHandler{handler: h.handler.WithGroup(name), showSource: h.showSource}
}

func (h *conditionalSourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}
