package scheduler

import "time"

func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}
