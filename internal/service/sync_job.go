package service

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// ScheduleSync registers a Data Dragon sync on c. Failures are logged and
// retried at the next tick.
func (s *ChampionService) ScheduleSync(ctx context.Context, c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		count, version, err := s.SyncFromDataDragon(ctx)
		if err != nil {
			log.Printf("ERROR [champion.ScheduleSync]: %v", err)
			return
		}
		log.Printf("INFO [champion.ScheduleSync]: synced %d champions from Data Dragon %s", count, version)
	})
}
