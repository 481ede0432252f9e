package core

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/juju/clock"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// FixedDelayGate opens a fixed amount of time after the spawn,
// whether or not the application actually accepts connections yet.
type FixedDelayGate struct {
	Delay     time.Duration
	Clock     clock.Clock
	logFields log.Fields
}

// Await waits for Delay. A failed exit of the child during the wait
// aborts it; a clean exit is logged and the wait continues.
func (g *FixedDelayGate) Await(ctx context.Context, exited *Awaiter) error {
	log.WithFields(g.logFields).Infof("waiting for application to start (delay is %v)", g.Delay)
	timer := g.Clock.NewTimer(g.Delay)
	defer timer.Stop()

	exitedCh := exited.Done()
	for {
		select {
		case <-timer.Chan():
			log.WithFields(g.logFields).Info("resuming now")
			return nil
		case <-exitedCh:
			if err := exited.Err(); err != nil {
				return err
			}
			log.WithFields(g.logFields).Warn("application exited before the startup delay elapsed")
			exitedCh = nil
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		}
	}
}

func (g *FixedDelayGate) WaitState() State {
	return StateWaitingFixedDelay
}

func NewFixedDelayGate(delay time.Duration, clk clock.Clock) *FixedDelayGate {
	return &FixedDelayGate{
		Delay:     delay,
		Clock:     clk,
		logFields: log.Fields{"module": "fixed_delay_gate"},
	}
}

// ProbeGate polls the application's URL until it answers.
// Any response below 500 counts as ready.
type ProbeGate struct {
	URL       string
	Timeout   time.Duration
	Interval  time.Duration
	Client    *http.Client
	logFields log.Fields
}

// Await probes with exponential backoff until the application answers,
// Timeout elapses, the child exits or ctx is cancelled.
func (g *ProbeGate) Await(ctx context.Context, exited *Awaiter) error {
	log.WithFields(g.logFields).WithField("url", g.URL).Info("startup delay is disabled. probing readiness endpoint.")

	probeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-exited.Done():
			cancel()
		case <-probeCtx.Done():
		}
	}()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.Interval
	b.MaxElapsedTime = g.Timeout

	attempt := 0
	probe := func() error {
		attempt++
		if exited.Resolved() {
			return backoff.Permanent(errors.New("application exited while probing"))
		}
		if err := probeApplication(probeCtx, g.Client, g.URL); err != nil {
			var urlErr *url.Error
			if errors.As(err, &urlErr) && urlErr.Op == "parse" {
				return backoff.Permanent(err)
			}
			log.WithFields(g.logFields).WithField("err", err).Debugf("probing attempt %d failed", attempt)
			return err
		}
		return nil
	}

	err := backoff.Retry(probe, backoff.WithContext(b, probeCtx))
	if err == nil {
		log.WithFields(g.logFields).WithField("attempts", attempt).Info("application is ready")
		return nil
	}
	if exited.Resolved() {
		if exitErr := exited.Err(); exitErr != nil {
			return exitErr
		}
	}
	if ctx.Err() != nil {
		return errors.WithStack(ctx.Err())
	}
	log.WithFields(g.logFields).WithField("err", err).Warn("application readiness is inconclusive")
	return errors.Wrapf(ErrReadinessInconclusive, "%d probes of %s, last error: %v", attempt, g.URL, err)
}

// probeApplication sends one GET to target. Any response below 500
// means the application is up; the admin /ready check uses the same rule.
func probeApplication(ctx context.Context, client *http.Client, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	response, err := client.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	response.Body.Close()
	if response.StatusCode >= http.StatusInternalServerError {
		return errors.Errorf("%s returned %d", target, response.StatusCode)
	}
	return nil
}

func (g *ProbeGate) WaitState() State {
	return StateWaitingReadinessProbe
}

func NewProbeGate(url string, timeout time.Duration) *ProbeGate {
	return &ProbeGate{
		URL:       url,
		Timeout:   timeout,
		Interval:  250 * time.Millisecond,
		Client:    &http.Client{Timeout: 2 * time.Second},
		logFields: log.Fields{"module": "probe_gate"},
	}
}
