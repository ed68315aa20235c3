package engine

// Report summarizes a batch for the presentation layer: per-outcome counts
// plus the ordered detail list.
type Report struct {
	Results []Result

	Succeeded int
	Skipped   int
	Cancelled int
	Failed    int

	// Reclaimed is the best-effort total of bytes freed.
	Reclaimed int64
}

// Aggregate builds a Report from ordered results. Pure: no side effects,
// no retries, and outcomes are never changed.
func Aggregate(results []Result) Report {
	r := Report{Results: results}
	for _, res := range results {
		switch res.Outcome {
		case OutcomeSucceeded:
			r.Succeeded++
			r.Reclaimed += res.Reclaimed
		case OutcomeSkippedNotFound:
			r.Skipped++
		case OutcomeCancelled:
			r.Cancelled++
		case OutcomeFailed:
			r.Failed++
		}
	}
	return r
}

// Total returns the number of attempted items.
func (r Report) Total() int {
	return len(r.Results)
}

// ExitCode maps the report onto the command surface contract:
// 0 when everything succeeded or was skipped, 1 when anything failed,
// 2 when the user cancelled (and nothing failed outright).
func (r Report) ExitCode() int {
	switch {
	case r.Failed > 0:
		return 1
	case r.Cancelled > 0:
		return 2
	default:
		return 0
	}
}
