package remote

import (
	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/fadeled/logger"
)

// Serve listens for OSC packets on addr and hands them to d. It blocks until the
// server fails.
func Serve(addr string, d *Dispatcher) error {
	log := logger.GetProjectLogger().WithField("component", "remote")
	log.WithField("address", addr).Info("Listening for OSC commands")

	server := &osc.Server{
		Addr:       addr,
		Dispatcher: d,
	}
	return server.ListenAndServe()
}
