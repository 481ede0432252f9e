package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartupSequence(t *testing.T) {
	m := NewStateMachine(nil)
	assert.Equal(t, StateNotStarted, m.Current())

	for _, s := range []State{StateLaunching, StateWaitingFixedDelay, StateServing, StateStopped} {
		require.NoError(t, m.Transition(s))
		assert.Equal(t, s, m.Current())
	}
}

func TestFailedToLaunchOnlyFromLaunching(t *testing.T) {
	m := NewStateMachine(nil)
	assert.True(t, errors.Is(m.Transition(StateFailedToLaunch), ErrInvalidTransition))

	require.NoError(t, m.Transition(StateLaunching))
	require.NoError(t, m.Transition(StateFailedToLaunch))
	assert.True(t, errors.Is(m.Transition(StateWaitingFixedDelay), ErrInvalidTransition))
}

func TestNoWayBackFromServing(t *testing.T) {
	m := NewStateMachine(nil)
	require.NoError(t, m.Transition(StateLaunching))
	require.NoError(t, m.Transition(StateWaitingReadinessProbe))
	require.NoError(t, m.Transition(StateServing))

	for _, s := range []State{StateNotStarted, StateLaunching, StateWaitingFixedDelay, StateWaitingReadinessProbe, StateFailedToStart} {
		err := m.Transition(s)
		assert.True(t, errors.Is(err, ErrInvalidTransition), "SERVING -> %s", s)
	}
	assert.Equal(t, StateServing, m.Current())
}

func TestStateGauge(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	m := NewStateMachine(metrics)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.State.WithLabelValues(string(StateNotStarted))))

	require.NoError(t, m.Transition(StateLaunching))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.State.WithLabelValues(string(StateNotStarted))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.State.WithLabelValues(string(StateLaunching))))
}
