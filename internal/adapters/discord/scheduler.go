package discord

import (
	"context"
	"time"
)

// RunScheduledTasks purges widgets untouched for ttl every interval, until
// ctx is done. It catches widgets whose deletion event was missed.
func (h *Handler) RunScheduledTasks(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.purgeIdleWidgets(ctx, ttl)
		}
	}
}

func (h *Handler) purgeIdleWidgets(ctx context.Context, ttl time.Duration) {
	n, err := h.widget.PurgeIdle(ctx, h.now().Add(-ttl))
	if err != nil {
		h.logger.Error("❌ failed to purge idle widgets", "error", err)
		return
	}
	if n > 0 {
		h.logger.Info("🧹 purged idle widgets", "count", n)
	}
}
