/*
Copyright © 2026 Dashshim Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Instance sequences the supervisor and the redirect server:
// launch, wait for readiness, then bind and serve until ctx is done.
type Instance struct {
	Supervisor ProcessSupervisor
	Server     *RedirectServer
	Admin      *AdminServer
	States     *StateMachine
	Metrics    *Metrics
	logFields  log.Fields
}

// Run blocks until ctx is cancelled or the redirect server fails.
// Launch failures and child failures before readiness are returned
// and the redirect server never binds. Cancellation is not an error.
func (i *Instance) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if i.Admin != nil {
		if err := i.Admin.Listen(); err != nil {
			return err
		}
		i.Admin.Serve()
		defer i.Admin.Close()
	}

	sw := NewStopwatch()
	if err := i.States.Transition(StateLaunching); err != nil {
		return err
	}

	handle, err := i.Supervisor.Start(runCtx)
	if err != nil {
		i.transition(StateFailedToLaunch)
		log.WithFields(i.logFields).WithField("err", err).Error("error starting the application")
		return err
	}
	defer i.Supervisor.Stop()
	exited := i.Supervisor.Exited()
	sw.Lap("launch")

	i.transition(i.Supervisor.WaitState())
	if err := i.Supervisor.AwaitReady(runCtx); err != nil {
		if ctx.Err() != nil {
			i.transition(StateStopped)
			return nil
		}
		i.transition(StateFailedToStart)
		log.WithFields(i.logFields).WithField("err", err).Error("application failed before it became ready")
		return err
	}
	sw.Lap("readiness")

	if err := i.Server.Listen(); err != nil {
		i.transition(StateFailedToStart)
		log.WithFields(i.logFields).WithField("err", err).Error("error starting the redirect server")
		return err
	}
	served := i.Server.Serve()
	sw.Lap("listen")

	i.transition(StateServing)
	i.Metrics.observeStartup(sw.Total())
	log.WithFields(i.logFields).WithFields(sw.Fields()).Info("startup complete")

	go i.watchApplication(runCtx, handle, exited)

	select {
	case <-ctx.Done():
		log.WithFields(i.logFields).Info("shutting down")
	case <-served.Done():
	}

	cancel()
	i.Server.Close()
	err = served.Err()
	i.transition(StateStopped)
	return err
}

// watchApplication only logs: once serving, the redirect page stays up
// whatever happens to the application.
func (i *Instance) watchApplication(ctx context.Context, handle *ProcessHandle, exited *Awaiter) {
	<-exited.Done()
	err := exited.Err()
	fields := log.Fields{"pid": handle.Pid, "err": err}

	if ctx.Err() != nil {
		log.WithFields(i.logFields).WithFields(fields).Info("application stopped")
		return
	}
	i.Metrics.observeChildExit(err)
	if err != nil {
		log.WithFields(i.logFields).WithFields(fields).Error("application exited after startup; redirect page is still served")
		return
	}
	log.WithFields(i.logFields).WithFields(fields).Warn("application exited after startup")
}

func (i *Instance) transition(to State) {
	if err := i.States.Transition(to); err != nil {
		log.WithFields(i.logFields).WithField("err", err).Warn("ignoring state transition")
	}
}

// NewInstance builds the supervisor, gate, redirect server and optional
// admin server described by config. clk drives the fixed startup delay.
func NewInstance(config *Config, reg *prometheus.Registry, clk clock.Clock) (*Instance, error) {
	metrics := NewMetrics(reg)
	states := NewStateMachine(metrics)

	var gate ReadinessGate
	if config.StartupDelaySeconds > 0 {
		gate = NewFixedDelayGate(time.Second*time.Duration(config.StartupDelaySeconds), clk)
	} else {
		gate = NewProbeGate(config.TargetURL, time.Second*time.Duration(config.ProbeTimeoutSeconds))
	}

	supervisor := NewSupervisor(config.AppCommand, config.AppArgs, gate)
	supervisor.Dir = config.WorkDir
	supervisor.ShutdownGrace = time.Second * time.Duration(config.ShutdownGraceSeconds)

	server, err := NewRedirectServer(config.Port, config.TargetURL, config.PageTitle, metrics)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render redirect page")
	}

	instance := &Instance{
		Supervisor: supervisor,
		Server:     server,
		States:     states,
		Metrics:    metrics,
		logFields:  log.Fields{"module": "instance"},
	}

	if config.AdminPort > 0 {
		instance.Admin = NewAdminServer(config.AdminPort, reg, states, supervisor.Alive)
		if config.StartupDelaySeconds <= 0 {
			instance.Admin.AddReadinessCheck("upstream", upstreamCheck(config.TargetURL))
		}
	}
	return instance, nil
}

func NewDefaultConfig() *Config {
	return &Config{
		Port:                 DefaultPort,
		AppCommand:           DefaultAppCommand,
		AppArgs:              DefaultAppArgs,
		TargetURL:            DefaultTargetURL,
		PageTitle:            DefaultPageTitle,
		StartupDelaySeconds:  DefaultStartupDelaySeconds,
		ProbeTimeoutSeconds:  DefaultProbeTimeoutSeconds,
		ShutdownGraceSeconds: DefaultShutdownGraceSeconds,
	}
}
