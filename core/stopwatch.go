package core

import (
	"time"

	log "github.com/sirupsen/logrus"
)

type Lap struct {
	Name     string
	Duration time.Duration
}

// Stopwatch times the phases of the startup sequence.
type Stopwatch struct {
	Laps      []Lap
	StartTime time.Time
	LapStart  time.Time
}

func (s *Stopwatch) Lap(name string) {
	s.Laps = append(s.Laps, Lap{name, time.Since(s.LapStart)})
	s.LapStart = time.Now()
}

func (s *Stopwatch) Total() time.Duration {
	return time.Since(s.StartTime)
}

// Fields renders the laps for a log entry.
func (s *Stopwatch) Fields() log.Fields {
	fields := log.Fields{"duration": s.Total()}
	for _, lap := range s.Laps {
		fields[lap.Name] = lap.Duration
	}
	return fields
}

func NewStopwatch() *Stopwatch {
	n := time.Now()
	return &Stopwatch{
		StartTime: n,
		LapStart:  n,
	}
}
