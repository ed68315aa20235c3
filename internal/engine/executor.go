package engine

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/priyamkaur/winbroom/internal/catalog"
	"github.com/priyamkaur/winbroom/internal/core"
	"github.com/priyamkaur/winbroom/internal/resolve"
	"github.com/priyamkaur/winbroom/pkg/protected"
)

// ActionRunner invokes the OS utility behind a pathless catalog item and
// reports best-effort reclaimed bytes.
type ActionRunner interface {
	Run(ctx context.Context, action catalog.Action) (int64, error)
}

// PrivilegeChecker reports whether the process runs with administrator
// rights.
type PrivilegeChecker interface {
	IsElevated() bool
}

// Attempt pairs one item with its freshly resolved target and the gate's
// decision for this execution request.
type Attempt struct {
	Item     catalog.Item
	Target   resolve.Target
	Decision Decision
}

// Executor performs the destructive step for single items and batches.
// Removal and stat functions are injectable so tests can verify that
// skipped items never touch the filesystem.
type Executor struct {
	actions ActionRunner
	priv    PrivilegeChecker
	guard   *protected.List
	log     zerolog.Logger

	remove  func(string) error
	stat    func(string) (os.FileInfo, error)
	measure func(string) int64
}

// NewExecutor wires an Executor to the real filesystem.
func NewExecutor(actions ActionRunner, priv PrivilegeChecker, guard *protected.List, log zerolog.Logger) *Executor {
	return &Executor{
		actions: actions,
		priv:    priv,
		guard:   guard,
		log:     log,
		remove:  os.RemoveAll,
		stat:    os.Stat,
		measure: core.DirSize,
	}
}

// NeedsElevation reports whether the item requires administrator rights
// that the current process does not hold. Such items fail the privilege
// precheck before any confirmation is collected.
func (e *Executor) NeedsElevation(item catalog.Item) bool {
	return item.Risk == catalog.RiskElevated && !e.priv.IsElevated()
}

// Execute attempts one item whose gate decision was Proceed. Every failure
// becomes a classified Result; Execute never panics across a batch.
//
// Side effects are irreversible. There is no dry-run here: a preview stops
// before the Executor is reached.
func (e *Executor) Execute(ctx context.Context, item catalog.Item, target resolve.Target) Result {
	// Privilege is checked before any destructive attempt, regardless
	// of confirmation state.
	if e.NeedsElevation(item) {
		e.log.Warn().Str("item", item.ID).Msg("elevated item attempted without elevation")
		return failed(item.ID, FailureInsufficientPrivilege,
			"administrator privilege required; re-run elevated")
	}

	if item.IsAction() {
		return e.runAction(ctx, item)
	}
	return e.removeTarget(item, target)
}

// ExecuteBatch processes attempts sequentially and independently: one
// item's failure never aborts the batch, the output preserves input order,
// and its length always equals the input length. onResult, if non-nil, is
// invoked once per completed item so a caller can render incremental
// progress.
func (e *Executor) ExecuteBatch(ctx context.Context, attempts []Attempt, onResult func(Result)) []Result {
	results := make([]Result, 0, len(attempts))
	for _, a := range attempts {
		var res Result
		if a.Decision == Cancelled {
			res = cancelled(a.Item.ID)
		} else {
			res = e.Execute(ctx, a.Item, a.Target)
		}
		results = append(results, res)
		if onResult != nil {
			onResult(res)
		}
	}
	return results
}

func (e *Executor) runAction(ctx context.Context, item catalog.Item) Result {
	e.log.Info().Str("item", item.ID).Msg("invoking system utility")

	reclaimed, err := e.actions.Run(ctx, item.Location.Action)
	if err != nil {
		class, reason := classifyActionError(err)
		e.log.Error().Str("item", item.ID).Str("reason", reason).Msg("system utility failed")
		return failed(item.ID, class, reason)
	}
	return succeeded(item.ID, reclaimed)
}

func (e *Executor) removeTarget(item catalog.Item, target resolve.Target) Result {
	if target.Existence == resolve.NotFound {
		if target.StatDenied {
			// The validator showed this as not found, but the user
			// chose to attempt it anyway; report the real cause.
			return failed(item.ID, FailurePermissionDenied,
				"access denied checking "+target.Path)
		}
		return skipped(item.ID)
	}

	if e.guard.Blocks(target.Path) {
		e.log.Error().Str("item", item.ID).Str("path", target.Path).Msg("refusing protected path")
		return failed(item.ID, FailurePathProtected,
			"refusing to remove protected path "+target.Path)
	}

	// Validation is racy by nature; re-check so a target that vanished in
	// the meantime reports as a normal skip rather than a failure.
	if _, err := e.stat(target.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return skipped(item.ID)
		}
		class, reason := classifyRemoveError(err)
		return failed(item.ID, class, reason)
	}

	size := e.measure(target.Path)

	e.log.Info().Str("item", item.ID).Str("path", target.Path).
		Int64("bytes", size).Msg("removing")

	if err := e.remove(target.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Disappeared mid-removal: nothing left to clean.
			return skipped(item.ID)
		}
		class, reason := classifyRemoveError(err)
		e.log.Error().Str("item", item.ID).Str("reason", reason).Msg("removal failed")
		return failed(item.ID, class, reason)
	}

	return succeeded(item.ID, size)
}
