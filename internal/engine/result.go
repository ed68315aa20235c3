// Package engine sequences and performs the destructive part of a cleanup:
// confirmation gating, execution of single items and batches, error
// classification, and result aggregation.
package engine

// Outcome is the terminal state of one execution attempt.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeSkippedNotFound
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeSkippedNotFound:
		return "skipped (not found)"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailureClass distinguishes failure causes the user can act on
// differently: re-run elevated, close a program holding a lock, and so on.
type FailureClass int

const (
	FailureNone FailureClass = iota
	FailurePermissionDenied
	FailureInUseOrLocked
	FailureInsufficientPrivilege
	FailureExternalTool
	FailurePathProtected
	FailureOther
)

func (f FailureClass) String() string {
	switch f {
	case FailureNone:
		return ""
	case FailurePermissionDenied:
		return "permission denied"
	case FailureInUseOrLocked:
		return "in use or locked"
	case FailureInsufficientPrivilege:
		return "insufficient privilege"
	case FailureExternalTool:
		return "external tool failure"
	case FailurePathProtected:
		return "path is protected"
	default:
		return "error"
	}
}

// Result is the outcome of attempting one item. Owned by the execution
// request that produced it; aggregation never modifies it.
type Result struct {
	ItemID  string
	Outcome Outcome

	// Class and Reason are set only for OutcomeFailed.
	Class  FailureClass
	Reason string

	// Reclaimed is a best-effort byte count, never a correctness
	// guarantee.
	Reclaimed int64
}

func succeeded(itemID string, reclaimed int64) Result {
	return Result{ItemID: itemID, Outcome: OutcomeSucceeded, Reclaimed: reclaimed}
}

func skipped(itemID string) Result {
	return Result{ItemID: itemID, Outcome: OutcomeSkippedNotFound}
}

func cancelled(itemID string) Result {
	return Result{ItemID: itemID, Outcome: OutcomeCancelled}
}

func failed(itemID string, class FailureClass, reason string) Result {
	return Result{ItemID: itemID, Outcome: OutcomeFailed, Class: class, Reason: reason}
}
