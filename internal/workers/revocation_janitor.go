package workers

import (
	"time"

	"github.com/icproject/catalog-auth/internal/logger"
)

// revocationJanitor periodically sweeps expired entries out of an in-process
// revocation store. The store already prunes lazily on read, but entries that
// are never read again would otherwise stay resident until restart.
type revocationJanitor struct {
	pruner   Pruner
	interval time.Duration

	// done stops the sweep loop. Used by tests; in production the janitor
	// runs for the lifetime of the process.
	done chan struct{}

	logger *logger.Logger
}

// NewRevocationJanitor returns a [Worker] that prunes the given store every
// interval. Run blocks, so callers start it on its own goroutine.
func NewRevocationJanitor(pruner Pruner, interval time.Duration, logger *logger.Logger) Worker {
	return &revocationJanitor{
		pruner:   pruner,
		interval: interval,
		done:     make(chan struct{}),
		logger:   logger,
	}
}

func (j *revocationJanitor) Run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if pruned := j.pruner.Prune(time.Now()); pruned > 0 {
				j.logger.Debug().Int("pruned", pruned).Msg("revocation entries pruned")
			}
		case <-j.done:
			return
		}
	}
}

func (j *revocationJanitor) stop() {
	close(j.done)
}
