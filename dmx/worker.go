package dmx

import (
	"context"
	"sync"
	"time"

	"github.com/robmorgan/fadeled/logger"
	"github.com/sirupsen/logrus"
)

// OLAClient is the interface for communicating with OLA. *gola.Client satisfies it.
type OLAClient interface {
	SendDmx(universe int, values []byte) (status bool, err error)
	Close()
}

// SendWorker pushes every universe in state to client once per tick until ctx is done.
func SendWorker(ctx context.Context, client OLAClient, tick time.Duration, state *State, wg *sync.WaitGroup) error {
	defer wg.Done()
	defer client.Close()

	log := logger.GetProjectLogger().WithField("component", "dmx")
	log.WithField("tick", tick).Info("DMX send worker started")

	t := time.NewTimer(tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("DMX send worker shutdown")
			return ctx.Err()
		case <-t.C:
			for _, u := range state.Universes() {
				if _, err := client.SendDmx(u, state.Universe(u)); err != nil {
					log.WithError(err).WithFields(logrus.Fields{"universe": u}).Warn("Failed to send DMX")
				}
			}
			t.Reset(tick)
		}
	}
}
