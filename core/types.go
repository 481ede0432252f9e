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

//go:generate mockgen -destination=../mocks/mock_supervisor.go -package=mocks dashshim/core ProcessSupervisor

import (
	"context"
	"time"
)

const (
	DefaultPort                 int    = 3000
	DefaultTargetURL            string = "http://localhost:8050"
	DefaultPageTitle            string = "NBA Stats Analyzer"
	DefaultAppCommand           string = "python"
	DefaultStartupDelaySeconds  int    = 5
	DefaultProbeTimeoutSeconds  int    = 30
	DefaultShutdownGraceSeconds int    = 5
)

// DefaultAppArgs is the script handed to DefaultAppCommand.
var DefaultAppArgs = []string{"app.py"}

// ProcessHandle describes the child process owned by a `Supervisor`.
// Other components may read it but never signal the process themselves.
type ProcessHandle struct {
	Pid       int
	Command   string
	StartedAt time.Time
}

// ProcessSupervisor is the contract between an `Instance` and
// whatever owns the external application's process.
//
// Start spawns the process and fails fast with a `*LaunchError`.
// AwaitReady blocks until the readiness gate opens, the child fails
// or the context is cancelled. WaitState names the state the system
// is in while AwaitReady blocks.
type ProcessSupervisor interface {
	Start(context.Context) (*ProcessHandle, error)
	AwaitReady(context.Context) error
	WaitState() State
	Exited() *Awaiter
	Stop()
}

// ReadinessGate decides when a freshly spawned application is
// considered safe to redirect traffic to.
type ReadinessGate interface {
	Await(ctx context.Context, exited *Awaiter) error
	WaitState() State
}

// Config of common knobs.
type Config struct {
	Port                 int
	AppCommand           string
	AppArgs              []string
	WorkDir              string
	TargetURL            string
	PageTitle            string
	StartupDelaySeconds  int
	ProbeTimeoutSeconds  int
	ShutdownGraceSeconds int
	AdminPort            int
	EnableVerboseLog     bool
}
