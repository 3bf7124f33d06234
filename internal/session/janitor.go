package session

import (
	"fmt"

	"family-calendar/internal/logger"

	"github.com/robfig/cron/v3"
)

const DefaultPurgeSchedule = "@every 15m"

// StartJanitor purges expired in-memory sessions on schedule. The returned
// cron must be stopped on shutdown.
func StartJanitor(store *MemoryStore, schedule string, log *logger.Logger) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if n := store.PurgeExpired(); n > 0 {
			log.Debug("SESSION", fmt.Sprintf("Purged %d expired sessions, %d active", n, store.Len()))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session purge schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
