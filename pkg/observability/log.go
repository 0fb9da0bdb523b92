package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports HTTP and cache events to a logger at debug level, with
// failures and stale fallbacks at warn level. It implements both
// [HTTPHooks] and [CacheHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to l. A nil l uses log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, statusCode int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", statusCode, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("request failed", "method", method, "host", host, "path", path, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, namespace string) {
	h.logger.Debug("cache hit", "namespace", namespace)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, namespace string) {
	h.logger.Debug("cache miss", "namespace", namespace)
}

func (h *LogHooks) OnCacheSet(_ context.Context, namespace string, size int) {
	h.logger.Debug("cache set", "namespace", namespace, "bytes", size)
}

func (h *LogHooks) OnCacheStale(_ context.Context, namespace string, age time.Duration, err error) {
	h.logger.Warn("serving stale cache entry", "namespace", namespace, "age", age.Round(time.Second), "err", err)
}

var (
	_ HTTPHooks  = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
)
