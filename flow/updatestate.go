package flow

import (
	"github.com/flowsim/flowsim/clock"
	"github.com/flowsim/flowsim/resource"
)

// UpdateState is the Process control loop's entry point (spec.md
// §4.2): every wake-up, whether from a Stock's state-change emission,
// an environment transition, or the Process's own scheduled wake-up,
// runs this same seven-step algorithm. sourceEventID is the EventID
// that caused this invocation. It is the SourceEventID of the first
// LogRecord this call produces; each later record in the same call
// names the record logged just before it as its source (ProcessStart
// names the upstream Remove), forming a causal chain.
func (p *Process) UpdateState(sourceEventID EventID) {
	now := p.sched.Now()

	// Step 1 — drop a self-schedule this invocation is consuming.
	if p.hasScheduled && p.scheduledAt <= now {
		p.hasScheduled = false
		p.scheduled = nil
	}

	// Step 2 — advance counters by elapsed time.
	delta := now.Sub(p.previousCheckTime)
	hadActiveDelay := p.delayModes != nil && p.hasActiveFix()
	isProcessing := p.inFlight != nil && !hadActiveDelay
	envBlocked := p.envState == EnvStopped

	if isProcessing && !envBlocked {
		p.inFlight.TimeRemaining = p.inFlight.TimeRemaining.SaturatingSub(delta)
		if p.inFlight.TimeRemaining.IsZero() {
			finishID := p.events.Next()
			p.logEvent(finishID, sourceEventID, EventProcessFinish, LogRecord{Quantity: p.inFlight.Resource.Total()})
			p.pushDownstream(p.inFlight.Resource, finishID)
			p.inFlight = nil
			sourceEventID = finishID
		}
	}

	if !envBlocked && (hadActiveDelay || isProcessing) && p.delayModes != nil {
		transition := p.delayModes.Advance(delta)
		if transition.Changed() {
			if transition.From != "" {
				eventID := p.events.Next()
				p.logEvent(eventID, sourceEventID, EventDelayEnd, LogRecord{DelayName: transition.From})
				sourceEventID = eventID
			}
			if transition.To != "" {
				eventID := p.events.Next()
				p.logEvent(eventID, sourceEventID, EventDelayStart, LogRecord{DelayName: transition.To})
				sourceEventID = eventID
			}
		}
	}

	// Step 3 — poll environment.
	newEnvState := EnvNormal
	if p.env != nil {
		newEnvState = p.env.State()
	}
	if newEnvState != p.envState {
		eventID := p.events.Next()
		if p.envState == EnvNormal && newEnvState == EnvStopped {
			p.logEvent(eventID, sourceEventID, EventProcessStopped, LogRecord{})
		} else {
			p.logEvent(eventID, sourceEventID, EventProcessContinue, LogRecord{})
		}
		sourceEventID = eventID
		p.envState = newEnvState
	}

	hasActiveDelay := p.delayModes != nil && p.hasActiveFix()
	envBlockedNow := p.envState == EnvStopped

	// Step 4 — decide next action.
	var timeToNextProcessEvent clock.Duration
	var haveProcessEvent bool

	switch {
	case p.inFlight == nil && !hasActiveDelay && !envBlockedNow:
		timeToNextProcessEvent, haveProcessEvent, sourceEventID = p.tryStart(sourceEventID)

	case p.inFlight != nil && !hasActiveDelay:
		timeToNextProcessEvent, haveProcessEvent = p.inFlight.TimeRemaining, true

	case hasActiveDelay:
		timeToNextProcessEvent, haveProcessEvent = p.activeFixRemaining()

	default: // envBlockedNow
		haveProcessEvent = false
	}

	// Step 5 — compute next delay-mode event.
	var timeToNextDelayEvent clock.Duration
	var haveDelayEvent bool
	wouldProgress := (p.inFlight != nil || hasActiveDelay) && !envBlockedNow
	if wouldProgress && p.delayModes != nil {
		timeToNextDelayEvent, haveDelayEvent = p.delayModes.NextEventTime()
	}

	// Step 6 — schedule wake-up.
	next, haveNext := minDuration(timeToNextProcessEvent, haveProcessEvent, timeToNextDelayEvent, haveDelayEvent)
	if haveNext {
		if next == 0 {
			panic(ErrZeroNextEvent)
		}
		at := now.Add(next)
		p.scheduleWakeup(at)
	}

	// Step 7.
	p.previousCheckTime = now
}

// tryStart attempts to begin new work (spec.md §4.2 Step 4's first
// case). It returns the sampled process duration (if work started)
// and the event id to use as the cause for anything logged afterward
// in this invocation.
func (p *Process) tryStart(causeID EventID) (clock.Duration, bool, EventID) {
	upBand, upConnected := p.upstreamBand()
	downBand, downConnected := p.downstreamBand()

	upOK := upConnected && (upBand == resource.Normal || upBand == resource.Full)
	downOK := downConnected && (downBand == resource.Empty || downBand == resource.Normal)

	if !upOK || !downOK {
		reason := nonStartReason(upConnected, upBand, downConnected, downBand)
		eventID := p.events.Next()
		p.logEvent(eventID, causeID, EventProcessNonStart, LogRecord{Reason: reason})
		return 0, false, eventID
	}

	requestID := p.events.Next()
	p.logEvent(requestID, causeID, EventWithdrawRequest, LogRecord{})

	withdrawn, withdrawID := p.withdrawFromUpstreams(requestID)
	duration := clock.FromSeconds(p.TimeDistr.Sample())

	p.inFlight = &inFlightWork{TimeRemaining: duration, Resource: withdrawn}

	startID := p.events.Next()
	p.logEvent(startID, withdrawID, EventProcessStart, LogRecord{Quantity: withdrawn.Total()})
	return duration, true, startID
}

func nonStartReason(upConnected bool, upBand resource.Band, downConnected bool, downBand resource.Band) string {
	switch {
	case !upConnected:
		return ReasonUpstreamNotConnected
	case upBand == resource.Empty:
		return ReasonUpstreamEmpty
	case !downConnected:
		return ReasonDownstreamNotConnected
	case downBand == resource.Full:
		return ReasonDownstreamFull
	default:
		return ReasonDownstreamNotConnected
	}
}

// scheduleWakeup applies the cancel-and-reschedule policy of spec.md
// §4.2 Step 6: an earlier pending wake-up always wins over a later
// one, and only a strictly sooner one displaces it.
func (p *Process) scheduleWakeup(at clock.Time) {
	if p.hasScheduled {
		if p.scheduledAt <= at {
			return
		}
		p.scheduled.Cancel()
	}
	p.scheduled = p.sched.ScheduleKeyedEvent(at, func() {
		p.UpdateState(SchedulerEventID)
	})
	p.scheduledAt = at
	p.hasScheduled = true
}

func (p *Process) hasActiveFix() bool {
	_, _, ok := p.delayModes.activeFix()
	return ok
}

func (p *Process) activeFixRemaining() (clock.Duration, bool) {
	_, remaining, ok := p.delayModes.activeFix()
	return remaining, ok
}

func (p *Process) logEvent(eventID, sourceEventID EventID, eventType EventType, partial LogRecord) {
	partial.Time = p.sched.Now()
	partial.EventID = eventID
	partial.SourceEventID = sourceEventID
	partial.ElementName = p.ElementName
	partial.ElementCode = p.ElementCode
	partial.ElementType = p.ElementType
	partial.EventType = eventType
	logIfSet(p.log, partial)
}

// minDuration picks the smaller of two optional durations, per
// spec.md §4.2 Step 6's "min(time_to_next_process_event,
// time_to_next_delay_event), filtering Nones".
func minDuration(a clock.Duration, haveA bool, b clock.Duration, haveB bool) (clock.Duration, bool) {
	switch {
	case haveA && haveB:
		return clock.Min(a, b), true
	case haveA:
		return a, true
	case haveB:
		return b, true
	default:
		return 0, false
	}
}
