package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	batchSize     = 50
	flushInterval = 5 * time.Second
)

// storeSink is shared by a StoreHandler and every handler derived from it
// through WithAttrs, so they all feed one buffer.
type storeSink struct {
	db       *gorm.DB
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	done     chan struct{}
	stopped  sync.Once
	wg       sync.WaitGroup
	fallback *slog.Logger
}

// StoreHandler is an slog.Handler that batches ERROR+ records into the
// control store's system_logs table.
type StoreHandler struct {
	sink  *storeSink
	attrs []slog.Attr
	group string
}

func NewStoreHandler(db *gorm.DB) *StoreHandler {
	sink := &storeSink{
		db:       db,
		buffer:   make([]models.SystemLog, 0, batchSize),
		ticker:   time.NewTicker(flushInterval),
		done:     make(chan struct{}),
		fallback: slog.New(slog.NewJSONHandler(os.Stderr, nil)),
	}
	sink.wg.Add(1)
	go sink.flushLoop()
	return &StoreHandler{sink: sink}
}

func (s *storeSink) flushLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *storeSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, batchSize)
	s.mu.Unlock()

	// Reporting through slog here would feed the failure back into this handler.
	if err := s.db.CreateInBatches(batch, batchSize).Error; err != nil {
		s.fallback.Error("failed to flush system logs", "error", err, "count", len(batch))
	}
}

// Stop flushes what is buffered and stops the background loop. Safe to call twice.
func (h *StoreHandler) Stop() {
	h.sink.stopped.Do(func() {
		h.sink.ticker.Stop()
		close(h.sink.done)
	})
	h.sink.wg.Wait()
}

// Enabled only handles ERROR and above.
func (h *StoreHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *StoreHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		h.assign(&entry, extra, a)
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.sink.mu.Lock()
	h.sink.buffer = append(h.sink.buffer, entry)
	needFlush := len(h.sink.buffer) >= batchSize
	h.sink.mu.Unlock()

	if needFlush {
		go h.sink.flush()
	}
	return nil
}

func (h *StoreHandler) assign(entry *models.SystemLog, extra map[string]interface{}, a slog.Attr) {
	if h.group != "" {
		extra[h.group+"."+a.Key] = a.Value.Resolve().Any()
		return
	}

	v := a.Value.Resolve()
	switch a.Key {
	case "tenant":
		entry.Tenant = v.String()
	case "request_id":
		entry.RequestID = v.String()
	case "principal_id":
		s := v.String()
		entry.PrincipalID = &s
	case "role":
		entry.Role = v.String()
	case "path":
		entry.Path = v.String()
	case "error":
		entry.Error = v.String()
	default:
		extra[a.Key] = jsonValue(v)
	}
}

// jsonValue keeps values json.Marshal can encode and stringifies the rest.
func jsonValue(v slog.Value) interface{} {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		if s, ok := v.Any().(fmt.Stringer); ok {
			return s.String()
		}
	}
	return v.Any()
}

func (h *StoreHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *StoreHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}
