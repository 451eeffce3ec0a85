package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug lines to a
// logger. The CLI installs it when running with --verbose.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Install registers h for all hook categories.
func (h *LogHooks) Install() {
	SetGenerateHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnGenerateStart(_ context.Context, theme string, rowSize, columnSize int) {
	h.Logger.Debug("generate start", "theme", theme, "rowSize", rowSize, "columnSize", columnSize)
}

func (h *LogHooks) OnGenerateComplete(_ context.Context, theme string, tiles int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("generate failed", "theme", theme, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("generate complete", "theme", theme, "tiles", tiles, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ GenerateHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
