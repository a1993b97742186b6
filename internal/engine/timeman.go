package engine

import "time"

// UCILimits carries the time-control parameters a `go` command
// supplies, in the same shape the UCI wire protocol lines them up.
type UCILimits struct {
	Time      [2]time.Duration // wtime, btime
	Inc       [2]time.Duration // winc, binc
	MoveTime  time.Duration    // fixed time per move, overrides the clock allocator
	Depth     int              // 0 = no explicit depth limit
	Nodes     uint64           // 0 = no explicit node limit
	Infinite  bool
}

// TimeManager turns a UCILimits into an optimum/maximum budget for
// the current move and tracks elapsed wall-clock time against it.
type TimeManager struct {
	optimumTime time.Duration
	maximumTime time.Duration
	startTime   time.Time
}

// NewTimeManager returns an unstarted TimeManager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init starts the clock and computes the budget for side us. The
// allocator spends about 1/30 of the remaining time plus
// half the increment per move, and never lets the maximum exceed 80%
// of what remains.
func (tm *TimeManager) Init(limits UCILimits, us int) {
	tm.startTime = time.Now()

	if limits.MoveTime > 0 {
		tm.optimumTime = limits.MoveTime
		tm.maximumTime = limits.MoveTime
		return
	}

	if limits.Infinite || limits.Time[us] == 0 {
		tm.optimumTime = time.Hour
		tm.maximumTime = time.Hour
		return
	}

	timeLeft := limits.Time[us]
	inc := limits.Inc[us]

	tm.optimumTime = timeLeft/30 + inc/2

	maxFromRemaining := timeLeft * 8 / 10
	maxFromOptimum := tm.optimumTime * 4
	if maxFromOptimum < maxFromRemaining {
		tm.maximumTime = maxFromOptimum
	} else {
		tm.maximumTime = maxFromRemaining
	}

	if tm.optimumTime < 10*time.Millisecond {
		tm.optimumTime = 10 * time.Millisecond
	}
	if tm.maximumTime < 50*time.Millisecond {
		tm.maximumTime = 50 * time.Millisecond
	}
	if tm.maximumTime > maxFromRemaining {
		tm.maximumTime = maxFromRemaining
	}
	if tm.optimumTime > tm.maximumTime {
		tm.optimumTime = tm.maximumTime
	}
}

// Elapsed returns the time since Init.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// ShouldStop reports whether the maximum budget has been exceeded.
func (tm *TimeManager) ShouldStop() bool {
	return tm.Elapsed() >= tm.maximumTime
}

// PastOptimum reports whether the optimum budget has been exceeded,
// the signal the iterative-deepening loop uses to not start another
// depth it likely can't finish.
func (tm *TimeManager) PastOptimum() bool {
	return tm.Elapsed() >= tm.optimumTime
}

// AdjustForStability narrows the optimum budget once the best move
// has stopped changing across iterations — a generalization of the
// base allocator that costs nothing extra to carry.
func (tm *TimeManager) AdjustForStability(stability int) {
	switch {
	case stability >= 6:
		tm.optimumTime = tm.optimumTime * 40 / 100
	case stability >= 4:
		tm.optimumTime = tm.optimumTime * 60 / 100
	case stability >= 2:
		tm.optimumTime = tm.optimumTime * 80 / 100
	}
}

// AdjustForInstability widens the optimum budget (never past maximum)
// when the best move keeps changing between iterations.
func (tm *TimeManager) AdjustForInstability(changes int) {
	switch {
	case changes >= 4:
		tm.optimumTime = tm.optimumTime * 200 / 100
	case changes >= 2:
		tm.optimumTime = tm.optimumTime * 150 / 100
	}
	if tm.optimumTime > tm.maximumTime {
		tm.optimumTime = tm.maximumTime
	}
}
