package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogRenderHooks writes render events to a logger at debug level, and
// failures at error level.
type LogRenderHooks struct {
	Logger *log.Logger
}

// NewLogRenderHooks returns render hooks that log to l.
func NewLogRenderHooks(l *log.Logger) *LogRenderHooks { return &LogRenderHooks{Logger: l} }

func (h *LogRenderHooks) OnLoadStart(_ context.Context, format string) {
	h.Logger.Debug("loading document", "format", format)
}

func (h *LogRenderHooks) OnLoadComplete(_ context.Context, format string, molecules int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("load failed", "format", format, "err", err)
		return
	}
	h.Logger.Debug("loaded document", "format", format, "molecules", molecules, "duration", d)
}

func (h *LogRenderHooks) OnDrawStart(_ context.Context, mode string, atoms int) {
	h.Logger.Debug("drawing", "mode", mode, "atoms", atoms)
}

func (h *LogRenderHooks) OnDrawComplete(_ context.Context, mode string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("draw failed", "mode", mode, "err", err)
		return
	}
	h.Logger.Debug("drew", "mode", mode, "duration", d)
}

func (h *LogRenderHooks) OnEncodeStart(_ context.Context, format string) {
	h.Logger.Debug("encoding", "format", format)
}

func (h *LogRenderHooks) OnEncodeComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("encode failed", "format", format, "err", err)
		return
	}
	h.Logger.Debug("encoded", "format", format, "bytes", size, "duration", d)
}

// LogCacheHooks writes cache events to a logger at debug level.
type LogCacheHooks struct {
	Logger *log.Logger
}

// NewLogCacheHooks returns cache hooks that log to l.
func NewLogCacheHooks(l *log.Logger) *LogCacheHooks { return &LogCacheHooks{Logger: l} }

func (h *LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

// LogHTTPHooks writes one line per served request.
type LogHTTPHooks struct {
	Logger *log.Logger
}

// NewLogHTTPHooks returns HTTP hooks that log to l.
func NewLogHTTPHooks(l *log.Logger) *LogHTTPHooks { return &LogHTTPHooks{Logger: l} }

func (h *LogHTTPHooks) OnRequest(_ context.Context, id, method, path string) {
	h.Logger.Debug("request", "id", id, "method", method, "path", path)
}

func (h *LogHTTPHooks) OnResponse(_ context.Context, id, method, path string, status int, d time.Duration) {
	h.Logger.Info("served", "id", id, "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHTTPHooks) OnError(_ context.Context, id, method, path string, err error) {
	h.Logger.Error("request failed", "id", id, "method", method, "path", path, "err", err)
}

var (
	_ RenderHooks = (*LogRenderHooks)(nil)
	_ CacheHooks  = (*LogCacheHooks)(nil)
	_ HTTPHooks   = (*LogHTTPHooks)(nil)
)
