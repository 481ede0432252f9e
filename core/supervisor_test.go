//go:build !windows
// +build !windows

package core

import (
	"context"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/process"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSupervisor(command string, args ...string) (*Supervisor, *testclock.Clock) {
	clk := testclock.NewClock(time.Now())
	s := NewSupervisor(command, args, NewFixedDelayGate(5*time.Second, clk))
	s.ShutdownGrace = time.Second
	return s, clk
}

func TestLaunchFailure(t *testing.T) {
	s, _ := newTestSupervisor("dashshim-test-no-such-interpreter", "app.py")

	handle, err := s.Start(context.Background())
	assert.Nil(t, handle)
	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Equal(t, "dashshim-test-no-such-interpreter app.py", launchErr.Command)

	assert.True(t, s.Exited().Resolved())
	assert.True(t, errors.Is(s.AwaitReady(context.Background()), ErrNotStarted))
	assert.Error(t, s.Alive())
}

func TestMissingWorkDirIsALaunchFailure(t *testing.T) {
	s, _ := newTestSupervisor("true")
	s.Dir = "/dashshim/test/does/not/exist"

	_, err := s.Start(context.Background())
	var launchErr *LaunchError
	assert.True(t, errors.As(err, &launchErr))
}

func TestOnlyOneProcessPerSupervisor(t *testing.T) {
	s, _ := newTestSupervisor("sleep", "10")

	_, err := s.Start(context.Background())
	require.NoError(t, err)
	defer s.Stop()

	_, err = s.Start(context.Background())
	assert.True(t, errors.Is(err, ErrAlreadyStarted))
}

func TestReadyAfterFixedDelay(t *testing.T) {
	s, clk := newTestSupervisor("sleep", "10")

	handle, err := s.Start(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, handle.Pid)
	assert.Equal(t, "sleep 10", handle.Command)
	assert.Equal(t, StateWaitingFixedDelay, s.WaitState())

	ready := make(chan error, 1)
	go func() { ready <- s.AwaitReady(context.Background()) }()
	require.NoError(t, clk.WaitAdvance(5*time.Second, time.Second, 1))
	assert.NoError(t, <-ready)
	assert.NoError(t, s.Alive())

	s.Stop()
	var failure *ChildProcessFailure
	require.True(t, errors.As(s.Exited().Err(), &failure))
	assert.Equal(t, -1, failure.ExitCode)
	assert.Error(t, s.Alive())
}

func TestChildFailureBeforeDelay(t *testing.T) {
	s, _ := newTestSupervisor("sh", "-c", "exit 3")

	_, err := s.Start(context.Background())
	require.NoError(t, err)

	var failure *ChildProcessFailure
	require.True(t, errors.As(s.AwaitReady(context.Background()), &failure))
	assert.Equal(t, 3, failure.ExitCode)
}

func TestCleanExit(t *testing.T) {
	s, _ := newTestSupervisor("true")

	_, err := s.Start(context.Background())
	require.NoError(t, err)
	assert.NoError(t, s.Exited().Err())
}

func TestContextCancellationStopsChild(t *testing.T) {
	s, _ := newTestSupervisor("sleep", "30")
	ctx, cancelFunc := context.WithCancel(context.Background())

	_, err := s.Start(ctx)
	require.NoError(t, err)
	cancelFunc()

	select {
	case <-s.Exited().Done():
	case <-time.After(10 * time.Second):
		t.Fatal("child was not terminated")
	}
	assert.Error(t, s.Exited().Err())
}

func TestStopTerminatesProcessGroup(t *testing.T) {
	s, _ := newTestSupervisor("sh", "-c", "sleep 30 & wait")

	_, err := s.Start(context.Background())
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		t.Fatal("process group was not terminated")
	}
}

// groupMembers lists the live (non-zombie) processes of a process group.
func groupMembers(t *testing.T, pgid int) []int32 {
	pids, err := process.Pids()
	require.NoError(t, err)
	var members []int32
	for _, pid := range pids {
		if group, err := syscall.Getpgid(int(pid)); err != nil || group != pgid {
			continue
		}
		p, err := process.NewProcess(pid)
		if err != nil {
			continue
		}
		if status, err := p.Status(); err == nil && status == "Z" {
			continue
		}
		members = append(members, pid)
	}
	return members
}

func TestStopKillsDescendantsIgnoringTerm(t *testing.T) {
	s, _ := newTestSupervisor("sh", "-c", "trap '' TERM; sleep 30 & wait")
	s.ShutdownGrace = 200 * time.Millisecond

	handle, err := s.Start(context.Background())
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(groupMembers(t, handle.Pid)) >= 2 }, 5*time.Second, 20*time.Millisecond)

	s.Stop()
	assert.Eventually(t, func() bool { return len(groupMembers(t, handle.Pid)) == 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestStoppedChildIsNotLoggedAsFailure(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	s, _ := newTestSupervisor("sleep", "30")
	_, err := s.Start(context.Background())
	require.NoError(t, err)
	s.Stop()

	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, "application process exited with an error", e.Message)
	}
	assert.Equal(t, "application process stopped", hook.LastEntry().Message)
}

func TestOutputIsLogged(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	s, _ := newTestSupervisor("sh", "-c", "echo hello; echo oops >&2")
	_, err := s.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Exited().Err())

	logged := func(message string, level log.Level, stream string) bool {
		for _, e := range hook.AllEntries() {
			if e.Message == message && e.Level == level && e.Data["stream"] == stream {
				return true
			}
		}
		return false
	}
	assert.Eventually(t, func() bool { return logged("hello", log.InfoLevel, "stdout") }, 5*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return logged("oops", log.WarnLevel, "stderr") }, 5*time.Second, 10*time.Millisecond)
}

func TestLongOutputLineDoesNotKillChild(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	s, _ := newTestSupervisor("sh", "-c", "head -c 70000 /dev/zero | tr '\\0' a; echo; sleep 0.3; echo after")
	_, err := s.Start(context.Background())
	require.NoError(t, err)
	<-s.Exited().Done()
	require.NoError(t, s.Exited().Err())

	var long, after bool
	for _, e := range hook.AllEntries() {
		if e.Data["stream"] != "stdout" {
			continue
		}
		long = long || e.Message == strings.Repeat("a", 70000)
		after = after || e.Message == "after"
	}
	assert.True(t, long)
	assert.True(t, after)
}
