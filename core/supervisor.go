package core

import (
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/process"
	log "github.com/sirupsen/logrus"
)

// Supervisor owns the external application's process: it launches it,
// streams its output to the log, gates readiness and terminates the
// whole process group on Stop.
type Supervisor struct {
	Command       string
	Argv          []string
	Dir           string
	ShutdownGrace time.Duration
	Gate          ReadinessGate

	mu           sync.Mutex
	started      bool
	handle       *ProcessHandle
	cancel       context.CancelFunc
	exited       *Awaiter
	exitNotifier *AwaitNotifier
	logFields    log.Fields
}

// Start spawns the application. A spawn failure is reported
// immediately as a `*LaunchError`; no readiness wait happens.
func (s *Supervisor) Start(ctx context.Context) (*ProcessHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil, errors.WithStack(ErrAlreadyStarted)
	}
	s.started = true

	commandLine := strings.TrimSpace(strings.Join(append([]string{s.Command}, s.Argv...), " "))
	logger := log.WithFields(s.logFields).WithField("command", commandLine)

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, s.Command, s.Argv...)
	cmd.Dir = s.Dir
	setSysProcAttr(cmd)
	stopRequested := make(chan time.Time, 1)
	cmd.Cancel = func() error {
		stopRequested <- time.Now()
		return terminateProcess(cmd.Process)
	}
	cmd.WaitDelay = s.ShutdownGrace

	stdoutReader, stdout := io.Pipe()
	stderrReader, stderr := io.Pipe()
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger.Info("launching application")
	if err := cmd.Start(); err != nil {
		cancel()
		err = &LaunchError{Command: commandLine, Err: err}
		logger.WithField("err", err).Error("failed to launch application")
		s.exitNotifier.Notify(err)
		return nil, err
	}

	handle := &ProcessHandle{
		Pid:       cmd.Process.Pid,
		Command:   commandLine,
		StartedAt: time.Now(),
	}
	s.handle = handle
	s.cancel = cancel
	logger.WithField("pid", handle.Pid).Info("application launched")

	var output sync.WaitGroup
	output.Add(2)
	go func() {
		defer output.Done()
		logOutput(stdoutReader, logger.WithField("stream", "stdout"), log.InfoLevel)
	}()
	go func() {
		defer output.Done()
		logOutput(stderrReader, logger.WithField("stream", "stderr"), log.WarnLevel)
	}()

	go func() {
		err := exitError(handle, cmd.Wait())
		stdout.Close()
		stderr.Close()
		output.Wait()

		fields := log.Fields{"pid": handle.Pid, "err": err}
		select {
		case requestedAt := <-stopRequested:
			// Descendants that ignored SIGTERM are killed once the grace period is over.
			reapProcessGroup(handle.Pid, time.Until(requestedAt.Add(s.ShutdownGrace)))
			logger.WithFields(fields).Info("application process stopped")
		default:
			if err != nil {
				logger.WithFields(fields).Warn("application process exited with an error")
			} else {
				logger.WithField("pid", handle.Pid).Info("application process exited")
			}
		}
		cancel()
		s.exitNotifier.Notify(err)
	}()

	return handle, nil
}

// AwaitReady blocks on the readiness gate. A child failure before the
// gate opens is returned as a `*ChildProcessFailure`.
func (s *Supervisor) AwaitReady(ctx context.Context) error {
	s.mu.Lock()
	started := s.handle != nil
	s.mu.Unlock()

	if !started {
		return errors.WithStack(ErrNotStarted)
	}
	return s.Gate.Await(ctx, s.exited)
}

func (s *Supervisor) WaitState() State {
	return s.Gate.WaitState()
}

// Exited resolves once the child has exited. Its error is nil for a
// clean exit, a `*ChildProcessFailure` otherwise, or the `*LaunchError`
// when the child never started.
func (s *Supervisor) Exited() *Awaiter {
	return s.exited
}

// Handle returns the running child's handle, or nil before a
// successful Start.
func (s *Supervisor) Handle() *ProcessHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

// Alive reports an error unless the child is still running.
func (s *Supervisor) Alive() error {
	handle := s.Handle()
	if handle == nil {
		return errors.WithStack(ErrNotStarted)
	}
	if s.exited.Resolved() {
		return errors.Errorf("application process %d has exited", handle.Pid)
	}
	exists, err := process.PidExists(int32(handle.Pid))
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errors.Errorf("application process %d not found", handle.Pid)
	}
	return nil
}

// Stop terminates the child's process group (SIGTERM, then a kill once
// ShutdownGrace has passed) and waits for it to exit.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-s.exited.Done()
}

func exitError(handle *ProcessHandle, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrWaitDelay) {
		// The process exited cleanly but a descendant kept its output open.
		return nil
	}
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ChildProcessFailure{Pid: handle.Pid, ExitCode: code, Err: err}
}

// NewSupervisor creates a supervisor for a single run of command.
func NewSupervisor(command string, argv []string, gate ReadinessGate) *Supervisor {
	exited, exitNotifier := NewAwaiter()
	return &Supervisor{
		Command:       command,
		Argv:          argv,
		ShutdownGrace: time.Second * time.Duration(DefaultShutdownGraceSeconds),
		Gate:          gate,
		exited:        exited,
		exitNotifier:  exitNotifier,
		logFields:     log.Fields{"module": "supervisor"},
	}
}
