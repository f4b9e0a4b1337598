package report

import (
	"geiger/internal/engine/counter"
	"geiger/internal/engine/scan"
)

type DetectionStatus int

const (
	NoneDetectedForbidsUnsafe DetectionStatus = iota
	NoneDetectedAllowsUnsafe
	UnsafeDetected
)

var statuses = []DetectionStatus{NoneDetectedForbidsUnsafe, NoneDetectedAllowsUnsafe, UnsafeDetected}

func (s DetectionStatus) String() string {
	switch s {
	case NoneDetectedForbidsUnsafe:
		return "forbids_unsafe"
	case NoneDetectedAllowsUnsafe:
		return "allows_unsafe"
	default:
		return "unsafe_detected"
	}
}

// Classify derives the status of one package from its split metrics.
func Classify(res scan.SplitResult) DetectionStatus {
	if res.Used.UnsafeTotal()+res.Unused.UnsafeTotal() > 0 {
		return UnsafeDetected
	}
	if res.ForbidsUnsafe {
		return NoneDetectedForbidsUnsafe
	}
	return NoneDetectedAllowsUnsafe
}

// TotalPackageCounts accumulates the grand totals of one report.
type TotalPackageCounts struct {
	TotalCounterBlock       counter.CounterBlock
	TotalUnusedCounterBlock counter.CounterBlock

	UnsafeDetected            int
	NoneDetectedForbidsUnsafe int
	NoneDetectedAllowsUnsafe  int
}

func (t *TotalPackageCounts) Add(res scan.SplitResult, status DetectionStatus) {
	t.TotalCounterBlock = t.TotalCounterBlock.Add(res.Used)
	t.TotalUnusedCounterBlock = t.TotalUnusedCounterBlock.Add(res.Unused)
	switch status {
	case UnsafeDetected:
		t.UnsafeDetected++
	case NoneDetectedForbidsUnsafe:
		t.NoneDetectedForbidsUnsafe++
	default:
		t.NoneDetectedAllowsUnsafe++
	}
}

// DetectionStatus is the overall status: unsafe anywhere wins, then any
// package that allows unsafe, else everything forbids it.
func (t TotalPackageCounts) DetectionStatus() DetectionStatus {
	switch {
	case t.UnsafeDetected > 0:
		return UnsafeDetected
	case t.NoneDetectedAllowsUnsafe > 0:
		return NoneDetectedAllowsUnsafe
	default:
		return NoneDetectedForbidsUnsafe
	}
}
