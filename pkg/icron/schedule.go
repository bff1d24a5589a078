package icron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MimeLyc/srt-translator/pkg/log"
	"github.com/robfig/cron/v3"
)

// TriggerInfo describes the upcoming run of a scheduled job
type TriggerInfo struct {
	Name       string
	Expression string
	Next       time.Time
	Prev       time.Time

	TimeUntilNext time.Duration
}

// Scheduler runs named jobs on standard cron expressions (5 fields or
// descriptors such as "@every 5m").
type Scheduler struct {
	cron *cron.Cron

	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	id         cron.EntryID
	expression string
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{}),
			cron.SkipIfStillRunning(cronLogger{}),
		)),
		entries: make(map[string]entry),
	}
}

// Validate reports whether expr is a schedule the Scheduler accepts
func Validate(expr string) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// Add registers job under name, replacing any job with the same name
func (s *Scheduler) Add(name, expr string, job func()) error {
	if err := Validate(expr); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[name]; ok {
		s.cron.Remove(old.id)
	}
	id, err := s.cron.AddFunc(expr, job)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	s.entries[name] = entry{id: id, expression: expr}
	return nil
}

// Info returns trigger information for the named job. Next is zero until
// the scheduler has been started.
func (s *Scheduler) Info(name string, refTime time.Time) (*TriggerInfo, bool) {
	s.mu.RLock()
	e, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	ce := s.cron.Entry(e.id)
	info := &TriggerInfo{
		Name:       name,
		Expression: e.expression,
		Next:       ce.Next,
		Prev:       ce.Prev,
	}
	if !ce.Next.IsZero() {
		info.TimeUntilNext = ce.Next.Sub(refTime)
	}
	return info, true
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler; the returned context is done once running jobs finish
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug("cron: %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
