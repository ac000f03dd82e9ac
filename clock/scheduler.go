package clock

import "container/heap"

// action is one scheduled unit of work. Actions at the same virtual
// time run in the order they were scheduled (seq is a strictly
// increasing insertion counter), giving the FIFO tie-break spec.md
// §4.1 relies on to make the Stock state-change's +1ns offset
// sufficient to break same-instant feedback cycles.
type action struct {
	at        Time
	seq       uint64
	fn        func()
	cancelled bool
}

// CancelKey lets the scheduling caller cancel a previously scheduled
// keyed action. Cancelling an action that has already run, or calling
// Cancel more than once, is a no-op (spec.md §4.1 Failure model).
type CancelKey struct {
	a *action
}

// Cancel marks the action dead; it is skipped when the scheduler
// reaches it instead of running.
func (k *CancelKey) Cancel() {
	if k == nil || k.a == nil {
		return
	}
	k.a.cancelled = true
}

// actionQueue is a container/heap min-heap ordered by (at, seq).
type actionQueue []*action

func (q actionQueue) Len() int { return len(q) }
func (q actionQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q actionQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *actionQueue) Push(x any)   { *q = append(*q, x.(*action)) }
func (q *actionQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Scheduler is FlowSim's virtual-time event loop: a monotonic clock
// plus a priority queue of time-stamped actions, drained by StepUntil.
// It is single-threaded and not safe for concurrent use, matching
// spec.md §5's cooperative, single-threaded execution model.
type Scheduler struct {
	now   Time
	queue actionQueue
	seq   uint64
}

// NewScheduler creates a scheduler whose virtual clock starts at start.
func NewScheduler(start Time) *Scheduler {
	s := &Scheduler{now: start}
	heap.Init(&s.queue)
	return s
}

// Now returns the scheduler's current virtual time.
func (s *Scheduler) Now() Time { return s.now }

// ScheduleEvent enqueues a one-shot action to run at the given virtual
// time. It panics with ErrScheduleInPast if at is earlier than the
// scheduler's current time (spec.md §4.1 Failure model).
func (s *Scheduler) ScheduleEvent(at Time, fn func()) {
	s.ScheduleKeyedEvent(at, fn)
}

// ScheduleKeyedEvent is like ScheduleEvent but returns a CancelKey that
// lets the caller cancel the action before it runs.
func (s *Scheduler) ScheduleKeyedEvent(at Time, fn func()) *CancelKey {
	if at < s.now {
		panic(ErrScheduleInPast)
	}
	a := &action{at: at, seq: s.seq, fn: fn}
	s.seq++
	heap.Push(&s.queue, a)
	return &CancelKey{a: a}
}

// StepUntil drains the queue, advancing the virtual clock to each due
// action's time before running it, until the earliest pending action's
// time exceeds target. The clock is then advanced to target even if no
// action fired there. Actions scheduled during execution at the
// current time run before StepUntil returns, in FIFO order of
// scheduling (spec.md §4.1 Ordering guarantee).
func (s *Scheduler) StepUntil(target Time) {
	for s.queue.Len() > 0 && s.queue[0].at <= target {
		next := heap.Pop(&s.queue).(*action)
		s.now = next.at
		if next.cancelled {
			continue
		}
		next.fn()
	}
	if target > s.now {
		s.now = target
	}
}

// Pending reports whether any non-cancelled action remains queued.
func (s *Scheduler) Pending() bool {
	for _, a := range s.queue {
		if !a.cancelled {
			return true
		}
	}
	return false
}
