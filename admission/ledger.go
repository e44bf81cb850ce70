package admission

import "github.com/katalvlaran/pulsenet/schedule"

// Controller is the capability interface every Phase-1 variant implements,
// letting callers select a variant at startup and drive it uniformly.
type Controller interface {
	// ScheduleJob attempts to admit job, returning its resulting
	// JobSchedule (Admit 0 on rejection, 1 on success). Never returns nil.
	ScheduleJob(job schedule.Job) *schedule.JobSchedule

	// Rollback evicts a previously admitted job's committed traffic and
	// resets its schedule to not-admitted. Reports whether jobID was
	// found and had been admitted.
	Rollback(jobID int64) bool

	// Emit returns every schedule produced so far, in the order jobs were
	// first scheduled.
	Emit() []*schedule.JobSchedule
}

// ledger records JobSchedules in first-seen order, shared by every
// variant's Emit implementation.
type ledger struct {
	schedules map[int64]*schedule.JobSchedule
	order []int64
}

func newLedger() *ledger {
	return &ledger{schedules: make(map[int64]*schedule.JobSchedule)}
}

func (l *ledger) put(s *schedule.JobSchedule) {
	if _, ok := l.schedules[s.JobID]; !ok {
		l.order = append(l.order, s.JobID)
	}
	l.schedules[s.JobID] = s
}

func (l *ledger) get(jobID int64) (*schedule.JobSchedule, bool) {
	s, ok := l.schedules[jobID]
	return s, ok
}

func (l *ledger) emit() []*schedule.JobSchedule {
	out := make([]*schedule.JobSchedule, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.schedules[id])
	}
	return out
}
