package engine

import "github.com/priyamkaur/winbroom/internal/catalog"

// Decision is the confirmation gate's verdict for one item.
type Decision int

const (
	Proceed Decision = iota
	Cancelled
)

// RequiresConfirmation reports whether the gate must collect an explicit
// user response before this item may execute. Elevated items always
// require it; the per-item override can only add confirmation to low-risk
// items, never remove it.
func RequiresConfirmation(item catalog.Item) bool {
	return item.RequiresConfirmation()
}

// Gate evaluates the confirmation policy for one item against the user's
// response. Decisions are never cached: every execution request re-asks,
// since risk does not diminish with repetition.
func Gate(item catalog.Item, confirmed bool) Decision {
	if !RequiresConfirmation(item) {
		return Proceed
	}
	if confirmed {
		return Proceed
	}
	return Cancelled
}
