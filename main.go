package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/nickysemenza/gola"
	"github.com/robmorgan/fadeled/config"
	"github.com/robmorgan/fadeled/dmx"
	"github.com/robmorgan/fadeled/engine"
	"github.com/robmorgan/fadeled/fade"
	"github.com/robmorgan/fadeled/logger"
	"github.com/robmorgan/fadeled/monitor"
	"github.com/robmorgan/fadeled/remote"
	"k8s.io/utils/clock"
)

const (
	olaTick          = 40 * time.Millisecond
	commandQueueSize = 64
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	showMonitor := flag.Bool("monitor", false, "show live fade levels in the terminal")
	logLevel := flag.String("log-level", "", "override the configured log level")
	flag.Parse()

	logger := logger.GetProjectLogger()

	cfg := config.NewFadeConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Fatalf("error loading config. err='%v'", err)
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if err := Run(context.Background(), cfg, *showMonitor); err != nil {
		logger.Fatalf("fadeled stopped. err='%v'", err)
	}
}

// Run starts the fade engine and blocks until interrupted.
func Run(ctx context.Context, cfg config.FadeConfig, showMonitor bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	if showMonitor {
		restore, err := logToFile(cfg.LogFile)
		if err != nil {
			return err
		}
		defer restore()
	}
	logger := logger.GetProjectLogger()
	wg := sync.WaitGroup{}

	logger.Info("Initializing channels...")
	r, err := newRig(cfg, fade.FromClock(clock.RealClock{}))
	if err != nil {
		return err
	}
	defer r.close()

	// configure OLA for DMX output
	logger.Info("Connecting to OLA...")
	client, err := gola.New(cfg.OLAAddress)
	if err != nil {
		logger.Errorf("could not connect to OLA: %v", err)
	} else {
		wg.Add(1)
		go dmx.SendWorker(ctx, client, olaTick, r.state, &wg)
	}

	var opts []engine.Option
	if cfg.OSCAddress != "" {
		dispatcher := remote.NewDispatcher(commandQueueSize)
		opts = append(opts, engine.WithCommands(dispatcher.Commands()))
		go func() {
			if err := remote.Serve(cfg.OSCAddress, dispatcher); err != nil {
				logger.Errorf("OSC listener stopped: %v", err)
			}
		}()
	}

	snapshots := make(chan []engine.Snapshot, 1)
	if showMonitor {
		opts = append(opts, engine.WithObserver(monitor.Observer(snapshots)))
	}

	loop := engine.New(r.sched, r.channels, opts...)
	wg.Add(1)
	go func() {
		defer wg.Done()
		loop.Run(ctx)
	}()

	if showMonitor {
		if err := monitor.Run(snapshots); err != nil {
			logger.Errorf("monitor failed: %v", err)
		}
	} else {
		// handle CTRL+C interrupt
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt)
		select {
		case <-quit:
		case <-ctx.Done():
		}
	}

	logger.Println("shutting down fadeled")
	cancel()
	wg.Wait()
	return nil
}

// logToFile sends the project log to path so it does not draw over the monitor. The
// returned func restores the previous output.
func logToFile(path string) (func(), error) {
	if path == "" {
		prev := logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(prev) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	prev := logger.SetOutput(f)
	return func() {
		logger.SetOutput(prev)
		f.Close()
	}, nil
}
