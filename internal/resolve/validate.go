package resolve

import (
	"errors"
	"io/fs"
	"os"
)

// Validate performs the non-destructive existence check on a target and
// returns it with Existence set. Pathless (OS-action) targets pass through
// untouched. The check is inherently racy against later execution; the
// executor treats a target that disappears afterwards as a normal skip, not
// a guarantee violation.
func Validate(t Target) Target {
	return validateWithStat(t, os.Stat)
}

func validateWithStat(t Target, stat func(string) (os.FileInfo, error)) Target {
	if t.Path == "" {
		return t
	}

	_, err := stat(t.Path)
	switch {
	case err == nil:
		t.Existence = Exists
	case errors.Is(err, fs.ErrPermission):
		// Shown as not found, but the denial is kept so an attempted
		// execution reports the real cause.
		t.Existence = NotFound
		t.StatDenied = true
	default:
		t.Existence = NotFound
	}
	return t
}
