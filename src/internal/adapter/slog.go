// Package adapter bridges third-party logging frameworks into the
// pipeline. Adapters funnel exclusively through the Logger's public
// emission methods, so bridged records take the same single processing
// path as direct calls.
package adapter

import (
	"context"
	"log/slog"

	"vibelog/src/internal/core"
	"vibelog/src/internal/logger"
)

// Attribute keys the handler lifts out of the record into dedicated
// entry fields instead of context.
const (
	attrOperation = "operation"
	attrHumanNote = "human_note"
	attrAITodo    = "ai_todo"
)

// SlogHandler implements slog.Handler on top of a vibelog Logger.
type SlogHandler struct {
	logger *logger.Logger
	attrs  []slog.Attr
	groups []string
}

// NewSlogHandler wraps l for use with slog.New.
func NewSlogHandler(l *logger.Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled always reports true; level filtering is informational in the
// pipeline and the ring keeps everything it is configured to keep.
func (h *SlogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle converts one slog record into an emission. Recognized attrs
// become entry fields; everything else lands in context under its
// group-prefixed key.
func (h *SlogHandler) Handle(_ context.Context, rec slog.Record) error {
	var (
		operation string
		humanNote string
		aiTodo    string
	)
	ctx := make(map[string]any)

	collect := func(key string, v slog.Value) {
		switch key {
		case attrOperation:
			operation = v.String()
		case attrHumanNote:
			humanNote = v.String()
		case attrAITodo:
			aiTodo = v.String()
		default:
			ctx[key] = v.Resolve().Any()
		}
	}

	// Attrs from WithAttrs were qualified when stored; record attrs get
	// the current group prefix.
	for _, a := range h.attrs {
		collect(a.Key, a.Value)
	}
	rec.Attrs(func(a slog.Attr) bool {
		collect(h.contextKey(a.Key), a.Value)
		return true
	})

	opts := []logger.EmitOption{}
	if len(ctx) > 0 {
		opts = append(opts, logger.WithContext(ctx))
	}
	if humanNote != "" {
		opts = append(opts, logger.WithHumanNote(humanNote))
	}
	if aiTodo != "" {
		opts = append(opts, logger.WithAITodo(aiTodo))
	}

	switch mapLevel(rec.Level) {
	case core.LevelDebug:
		h.logger.Debug(operation, rec.Message, opts...)
	case core.LevelWarning:
		h.logger.Warning(operation, rec.Message, opts...)
	case core.LevelError:
		h.logger.Error(operation, rec.Message, opts...)
	default:
		h.logger.Info(operation, rec.Message, opts...)
	}
	return nil
}

// WithAttrs returns a handler that includes attrs on every record. Keys
// are qualified with the group prefix in effect at the time of the call.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.contextKey(a.Key), Value: a.Value})
	}
	return &next
}

// WithGroup returns a handler that prefixes subsequent attr keys.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func (h *SlogHandler) contextKey(key string) string {
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	return key
}

func mapLevel(l slog.Level) core.Level {
	switch {
	case l < slog.LevelInfo:
		return core.LevelDebug
	case l < slog.LevelWarn:
		return core.LevelInfo
	case l < slog.LevelError:
		return core.LevelWarning
	default:
		return core.LevelError
	}
}
