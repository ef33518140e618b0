package auth

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"skillpath/internal/logger"
)

// Pruner periodically reclaims expired sessions from a MemorySessionStore.
type Pruner struct {
	cron *cron.Cron
}

// NewPruner schedules store.Prune on spec (standard cron syntax or descriptors
// such as "@every 24h").
func NewPruner(store *MemorySessionStore, spec string, logg *logger.Logger) (*Pruner, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if removed := store.Prune(); removed > 0 {
			logg.Info("pruned expired sessions", "removed", removed, "remaining", store.Len())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule session pruning %q: %w", spec, err)
	}
	return &Pruner{cron: c}, nil
}

// Start runs the schedule in its own goroutine.
func (p *Pruner) Start() {
	p.cron.Start()
}

// Stop halts the schedule and waits for a running prune to finish.
func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
}
