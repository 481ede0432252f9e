package core

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// State of the whole launcher.
type State string

const (
	StateNotStarted            State = "NOT_STARTED"
	StateLaunching             State = "LAUNCHING"
	StateWaitingFixedDelay     State = "WAITING_FIXED_DELAY"
	StateWaitingReadinessProbe State = "WAITING_READINESS_PROBE"
	StateServing               State = "SERVING"
	StateFailedToLaunch        State = "FAILED_TO_LAUNCH"
	StateFailedToStart         State = "FAILED_TO_START"
	StateStopped               State = "STOPPED"
)

// AllStates in declaration order.
var AllStates = []State{
	StateNotStarted,
	StateLaunching,
	StateWaitingFixedDelay,
	StateWaitingReadinessProbe,
	StateServing,
	StateFailedToLaunch,
	StateFailedToStart,
	StateStopped,
}

// Nothing leads back from SERVING or out of a failed state.
var transitions = map[State][]State{
	StateNotStarted:            {StateLaunching},
	StateLaunching:             {StateWaitingFixedDelay, StateWaitingReadinessProbe, StateFailedToLaunch},
	StateWaitingFixedDelay:     {StateServing, StateFailedToStart, StateStopped},
	StateWaitingReadinessProbe: {StateServing, StateFailedToStart, StateStopped},
	StateServing:               {StateStopped},
}

// StateMachine tracks the startup sequence
// NOT_STARTED -> LAUNCHING -> WAITING_* -> SERVING -> STOPPED.
type StateMachine struct {
	mu        sync.Mutex
	current   State
	metrics   *Metrics
	logFields log.Fields
}

// Transition moves to the given state or returns `ErrInvalidTransition`.
func (m *StateMachine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, allowed := range transitions[m.current] {
		if allowed == to {
			log.WithFields(m.logFields).WithFields(log.Fields{"from": m.current, "to": to}).Debug("state transition")
			m.current = to
			m.metrics.setState(to)
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidTransition, "%s -> %s", m.current, to)
}

func (m *StateMachine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// NewStateMachine starts in NOT_STARTED. metrics may be nil.
func NewStateMachine(metrics *Metrics) *StateMachine {
	metrics.setState(StateNotStarted)
	return &StateMachine{
		current:   StateNotStarted,
		metrics:   metrics,
		logFields: log.Fields{"module": "state_machine"},
	}
}
