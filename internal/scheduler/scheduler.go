// Package scheduler fires a daily journaling reminder at a configured
// wall-clock time.
package scheduler

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner with a single daily reminder job.
// The callback runs on the cron goroutine; callers hand off to their
// own execution context (the journal service serializes engine access,
// so re-entrant conversation creation cannot race).
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	entryID  cron.EntryID
	callback func()
	logger   *slog.Logger
}

// New creates a stopped scheduler that will invoke callback once per day.
func New(callback func(), logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		callback: callback,
		logger:   logger,
	}
}

// Start schedules the daily reminder at the given "HH:MM" time and
// starts the runner.
func (s *Scheduler) Start(timeOfDay string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.schedule(timeOfDay); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler: started", slog.String("time", timeOfDay))
	return nil
}

// Reschedule replaces the reminder with a new daily time. Valid whether
// or not the runner has been started.
func (s *Scheduler) Reschedule(timeOfDay string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Remove(s.entryID)
	if err := s.schedule(timeOfDay); err != nil {
		return err
	}
	s.logger.Info("scheduler: rescheduled", slog.String("time", timeOfDay))
	return nil
}

// Stop halts the runner. Jobs already in flight run to completion.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cron.Stop()
	s.logger.Info("scheduler: stopped")
}

// TriggerNow invokes the reminder callback immediately (for testing and
// the manual "journal now" action).
func (s *Scheduler) TriggerNow() {
	s.callback()
}

// schedule registers the daily job; the caller holds s.mu.
func (s *Scheduler) schedule(timeOfDay string) error {
	spec, err := cronSpec(timeOfDay)
	if err != nil {
		return err
	}
	id, err := s.cron.AddFunc(spec, s.callback)
	if err != nil {
		return fmt.Errorf("scheduler: add job: %w", err)
	}
	s.entryID = id
	return nil
}

// cronSpec converts "HH:MM" into a daily cron expression.
func cronSpec(timeOfDay string) (string, error) {
	parts := strings.Split(timeOfDay, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("scheduler: invalid time %q, want HH:MM", timeOfDay)
	}
	var hour, minute int
	if _, err := fmt.Sscanf(timeOfDay, "%d:%d", &hour, &minute); err != nil {
		return "", fmt.Errorf("scheduler: invalid time %q: %w", timeOfDay, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("scheduler: time %q out of range", timeOfDay)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
