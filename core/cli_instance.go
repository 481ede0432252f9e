package core

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// RunCLIInstance runs an `Instance` for config until SIGINT or SIGTERM.
// The application's process group is terminated on the way out.
func RunCLIInstance(config *Config) error {
	if config.EnableVerboseLog {
		log.SetLevel(log.DebugLevel)
	}

	instance, err := NewInstance(config, prometheus.NewRegistry(), clock.WallClock)
	if err != nil {
		return err
	}

	ctx := context.Background()
	cancelCtx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	chanSignal := make(chan os.Signal, 1)
	signal.Notify(chanSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(chanSignal)

	go func() {
		select {
		case s := <-chanSignal:
			log.WithFields(log.Fields{"module": "cli_instance", "signal": s}).Info("signal received")
			cancelFunc()
		case <-cancelCtx.Done():
		}
	}()

	return instance.Run(cancelCtx)
}
