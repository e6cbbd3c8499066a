package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler is the server's default handler: console JSON plus the
// control-store sink built by NewStoreHandler. Each sink keeps its own level,
// so stdout can run at INFO while only errors reach the logs table. A sink
// that fails to write does not stop the others.
type MultiHandler struct {
	sinks []slog.Handler
}

// NewMultiHandler skips nil sinks, which lets callers without a control
// store pass a nil store handler.
func NewMultiHandler(sinks ...slog.Handler) *MultiHandler {
	m := &MultiHandler{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range m.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, s := range m.sinks {
		if !s.Enabled(ctx, record.Level) {
			continue
		}
		if err := s.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	return m.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

// Stop flushes and stops every sink that buffers, such as the control-store
// sink. Console sinks are left alone.
func (m *MultiHandler) Stop() {
	for _, s := range m.sinks {
		if st, ok := s.(interface{ Stop() }); ok {
			st.Stop()
		}
	}
}

func (m *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	sinks := make([]slog.Handler, len(m.sinks))
	for i, s := range m.sinks {
		sinks[i] = fn(s)
	}
	return &MultiHandler{sinks: sinks}
}
