// Package resolve turns abstract catalog locations into concrete filesystem
// targets for the current environment and checks their existence.
package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/priyamkaur/winbroom/internal/catalog"
	"github.com/priyamkaur/winbroom/pkg/envutil"
)

// Existence is the validator's tri-state verdict on a target path.
type Existence int

const (
	// Unresolved means the validator has not run, or the target is an
	// OS action with no path to check.
	Unresolved Existence = iota
	Exists
	NotFound
)

func (e Existence) String() string {
	switch e {
	case Exists:
		return "exists"
	case NotFound:
		return "not found"
	default:
		return "unresolved"
	}
}

// Target is a catalog item's location made concrete. Targets are built
// fresh for every execution attempt — the filesystem may have changed since
// the last one — and discarded once the attempt's result is recorded.
type Target struct {
	ItemID string

	// Path is the absolute filesystem path, or empty for OS-action items.
	Path string

	Existence Existence

	// StatDenied records a permission failure during validation. The
	// target displays as NotFound, but an attempted execution reports
	// the denial accurately instead of skipping.
	StatDenied bool
}

// ResolutionError means required environment information is missing, so the
// item cannot be located on this system at all. Distinct from NotFound,
// which is a normal outcome.
type ResolutionError struct {
	ItemID string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot locate %q on this system: %v", e.ItemID, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Resolve expands an item's location spec against env into a Target.
// OS-action items resolve to a pathless target that skips validation.
func Resolve(item catalog.Item, env Env) (Target, error) {
	if item.IsAction() {
		return Target{ItemID: item.ID}, nil
	}

	expanded, err := envutil.Expand(item.Location.PathTemplate, env.Lookup)
	if err != nil {
		return Target{}, &ResolutionError{ItemID: item.ID, Err: err}
	}

	return Target{ItemID: item.ID, Path: filepath.Clean(expanded)}, nil
}
