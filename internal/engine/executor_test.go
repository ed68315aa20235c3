package engine

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyamkaur/winbroom/internal/catalog"
	"github.com/priyamkaur/winbroom/internal/resolve"
	"github.com/priyamkaur/winbroom/pkg/protected"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fakeRunner struct {
	reclaimed int64
	err       error
	calls     []catalog.Action
}

func (f *fakeRunner) Run(_ context.Context, action catalog.Action) (int64, error) {
	f.calls = append(f.calls, action)
	return f.reclaimed, f.err
}

type fakePriv struct{ elevated bool }

func (f fakePriv) IsElevated() bool { return f.elevated }

// recordingFS captures every mutation the executor attempts.
type recordingFS struct {
	removed   []string
	removeErr error
	statErr   error
}

func (r *recordingFS) remove(path string) error {
	r.removed = append(r.removed, path)
	return r.removeErr
}

func (r *recordingFS) stat(string) (os.FileInfo, error) {
	return nil, r.statErr
}

func newTestExecutor(runner *fakeRunner, priv fakePriv, rec *recordingFS) *Executor {
	e := NewExecutor(runner, priv, protected.NewList(`C:\protected`), zerolog.Nop())
	if rec != nil {
		e.remove = rec.remove
		e.stat = rec.stat
		e.measure = func(string) int64 { return 0 }
	}
	return e
}

func fsItem(id string, risk catalog.Risk) catalog.Item {
	return catalog.Item{
		ID:       id,
		Risk:     risk,
		Location: catalog.LocationSpec{PathTemplate: `%USERPROFILE%\` + id},
	}
}

func foundTarget(id, path string) resolve.Target {
	t := resolve.Target{ItemID: id, Path: path}
	return resolve.Validate(t)
}

// markExists fabricates a validated target for paths that exist only in a
// fake filesystem.
func markExists(t resolve.Target) resolve.Target {
	t.Existence = resolve.Exists
	return t
}

func deniedTarget(id, path string) resolve.Target {
	return resolve.Target{
		ItemID:     id,
		Path:       path,
		Existence:  resolve.NotFound,
		StatDenied: true,
	}
}

// ─── Filesystem targets ──────────────────────────────────────────────────────

func TestExecuteSkipsNotFoundWithoutTouchingFilesystem(t *testing.T) {
	rec := &recordingFS{}
	e := newTestExecutor(&fakeRunner{}, fakePriv{}, rec)

	item := fsItem("cargo-cache", catalog.RiskLow)
	target := resolve.Validate(resolve.Target{
		ItemID: item.ID,
		Path:   filepath.Join(t.TempDir(), "does-not-exist"),
	})
	require.Equal(t, resolve.NotFound, target.Existence)

	res := e.Execute(context.Background(), item, target)

	assert.Equal(t, OutcomeSkippedNotFound, res.Outcome)
	assert.Empty(t, rec.removed, "no filesystem mutation for a missing target")
}

func TestExecuteRemovesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "gradle-cache")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "modules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "modules", "dep.jar"), make([]byte, 64), 0o644))

	e := NewExecutor(&fakeRunner{}, fakePriv{}, protected.NewList(), zerolog.Nop())

	item := fsItem("gradle-cache", catalog.RiskLow)
	res := e.Execute(context.Background(), item, foundTarget(item.ID, target))

	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Equal(t, int64(64), res.Reclaimed)
	assert.NoDirExists(t, target)
}

func TestExecuteIdempotentOnRemovedTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "npm-cache")
	require.NoError(t, os.MkdirAll(target, 0o755))

	e := NewExecutor(&fakeRunner{}, fakePriv{}, protected.NewList(), zerolog.Nop())
	item := fsItem("npm-cache", catalog.RiskLow)

	first := e.Execute(context.Background(), item, foundTarget(item.ID, target))
	require.Equal(t, OutcomeSucceeded, first.Outcome)

	// A retry is a brand-new attempt: resolve and validate again.
	second := e.Execute(context.Background(), item, foundTarget(item.ID, target))
	assert.Equal(t, OutcomeSkippedNotFound, second.Outcome)

	third := e.Execute(context.Background(), item, foundTarget(item.ID, target))
	assert.Equal(t, OutcomeSkippedNotFound, third.Outcome)
}

func TestExecuteTargetDisappearedAfterValidation(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "vanishing")
	require.NoError(t, os.MkdirAll(target, 0o755))

	e := NewExecutor(&fakeRunner{}, fakePriv{}, protected.NewList(), zerolog.Nop())
	item := fsItem("vanishing", catalog.RiskLow)

	validated := foundTarget(item.ID, target)
	require.Equal(t, resolve.Exists, validated.Existence)

	// Simulate another process cleaning it between validate and execute.
	require.NoError(t, os.RemoveAll(target))

	res := e.Execute(context.Background(), item, validated)
	assert.Equal(t, OutcomeSkippedNotFound, res.Outcome, "nothing left to clean is a skip, not a failure")
}

func TestExecuteClassifiesPermissionDenied(t *testing.T) {
	rec := &recordingFS{
		removeErr: &fs.PathError{Op: "remove", Path: `C:\x`, Err: fs.ErrPermission},
	}
	e := newTestExecutor(&fakeRunner{}, fakePriv{}, rec)

	item := fsItem("locked", catalog.RiskLow)
	res := e.Execute(context.Background(), item, markExists(resolve.Target{ItemID: item.ID, Path: `C:\x`}))

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, FailurePermissionDenied, res.Class)
}

func TestExecuteClassifiesInUseOrLocked(t *testing.T) {
	rec := &recordingFS{
		removeErr: &fs.PathError{Op: "remove", Path: `C:\x`, Err: syscall.Errno(32)},
	}
	e := newTestExecutor(&fakeRunner{}, fakePriv{}, rec)

	item := fsItem("held-open", catalog.RiskLow)
	res := e.Execute(context.Background(), item, markExists(resolve.Target{ItemID: item.ID, Path: `C:\x`}))

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, FailureInUseOrLocked, res.Class)
}

func TestExecuteRefusesProtectedPath(t *testing.T) {
	rec := &recordingFS{}
	e := newTestExecutor(&fakeRunner{}, fakePriv{}, rec)

	item := fsItem("rogue", catalog.RiskLow)
	res := e.Execute(context.Background(), item, markExists(resolve.Target{ItemID: item.ID, Path: `C:\protected`}))

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, FailurePathProtected, res.Class)
	assert.Empty(t, rec.removed, "protected paths are never touched")
}

func TestExecuteDeniedOnStatReportsPermissionNotSkip(t *testing.T) {
	rec := &recordingFS{}
	e := newTestExecutor(&fakeRunner{}, fakePriv{}, rec)

	item := fsItem("unreadable", catalog.RiskLow)
	target := deniedTarget(item.ID, `C:\unreadable`)

	res := e.Execute(context.Background(), item, target)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, FailurePermissionDenied, res.Class)
	assert.Empty(t, rec.removed)
}

// ─── OS-action targets ───────────────────────────────────────────────────────

func TestExecuteActionSuccess(t *testing.T) {
	runner := &fakeRunner{reclaimed: 4096}
	e := newTestExecutor(runner, fakePriv{}, nil)

	item := catalog.Item{
		ID:       "recycle-bin",
		Risk:     catalog.RiskLow,
		Location: catalog.LocationSpec{Action: catalog.ActionEmptyRecycleBin},
	}

	res := e.Execute(context.Background(), item, resolve.Target{ItemID: item.ID})

	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Equal(t, int64(4096), res.Reclaimed)
	assert.Equal(t, []catalog.Action{catalog.ActionEmptyRecycleBin}, runner.calls)
}

func TestExecuteActionFailureIsExternalToolFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 87")}
	e := newTestExecutor(runner, fakePriv{}, nil)

	item := catalog.Item{
		ID:       "disk-cleanup",
		Risk:     catalog.RiskLow,
		Location: catalog.LocationSpec{Action: catalog.ActionDiskCleanup},
	}

	res := e.Execute(context.Background(), item, resolve.Target{ItemID: item.ID})

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, FailureExternalTool, res.Class)
}

func TestExecuteElevatedWithoutElevationFailsFast(t *testing.T) {
	runner := &fakeRunner{}
	e := newTestExecutor(runner, fakePriv{elevated: false}, nil)

	item := catalog.Item{
		ID:       "system-component-cleanup",
		Risk:     catalog.RiskElevated,
		Location: catalog.LocationSpec{Action: catalog.ActionComponentCleanup},
	}

	res := e.Execute(context.Background(), item, resolve.Target{ItemID: item.ID})

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, FailureInsufficientPrivilege, res.Class)
	assert.Empty(t, runner.calls, "no destructive attempt without elevation")
}

func TestExecuteElevatedWithElevationRuns(t *testing.T) {
	runner := &fakeRunner{}
	e := newTestExecutor(runner, fakePriv{elevated: true}, nil)

	item := catalog.Item{
		ID:       "system-component-cleanup",
		Risk:     catalog.RiskElevated,
		Location: catalog.LocationSpec{Action: catalog.ActionComponentCleanup},
	}

	res := e.Execute(context.Background(), item, resolve.Target{ItemID: item.ID})

	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Len(t, runner.calls, 1)
}

// ─── Batches ─────────────────────────────────────────────────────────────────

func TestBatchPreservesOrderAndLength(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "real-cache")
	require.NoError(t, os.MkdirAll(existing, 0o755))

	e := NewExecutor(&fakeRunner{reclaimed: 10}, fakePriv{}, protected.NewList(), zerolog.Nop())

	attempts := []Attempt{
		{Item: fsItem("a", catalog.RiskLow), Target: foundTarget("a", filepath.Join(dir, "missing-a"))},
		{Item: fsItem("b", catalog.RiskLow), Target: foundTarget("b", existing)},
		{Item: fsItem("c", catalog.RiskLow), Target: foundTarget("c", filepath.Join(dir, "missing-c"))},
	}

	results := e.ExecuteBatch(context.Background(), attempts, nil)

	require.Len(t, results, len(attempts), "no items silently dropped")
	assert.Equal(t, "a", results[0].ItemID)
	assert.Equal(t, "b", results[1].ItemID)
	assert.Equal(t, "c", results[2].ItemID)
	assert.Equal(t, OutcomeSkippedNotFound, results[0].Outcome)
	assert.Equal(t, OutcomeSucceeded, results[1].Outcome)
	assert.Equal(t, OutcomeSkippedNotFound, results[2].Outcome)
}

func TestBatchIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	third := filepath.Join(dir, "third")
	require.NoError(t, os.MkdirAll(first, 0o755))
	require.NoError(t, os.MkdirAll(third, 0o755))

	e := NewExecutor(&fakeRunner{}, fakePriv{}, protected.NewList(), zerolog.Nop())

	// The second item fails with permission denied via an injected
	// remover; first and third go through the real filesystem.
	realRemove := e.remove
	e.remove = func(path string) error {
		if path == `C:\locked` {
			return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrPermission}
		}
		return realRemove(path)
	}
	realStat := e.stat
	e.stat = func(path string) (os.FileInfo, error) {
		if path == `C:\locked` {
			return nil, nil
		}
		return realStat(path)
	}

	attempts := []Attempt{
		{Item: fsItem("first", catalog.RiskLow), Target: foundTarget("first", first)},
		{Item: fsItem("second", catalog.RiskLow), Target: markExists(resolve.Target{ItemID: "second", Path: `C:\locked`})},
		{Item: fsItem("third", catalog.RiskLow), Target: foundTarget("third", third)},
	}

	results := e.ExecuteBatch(context.Background(), attempts, nil)

	require.Len(t, results, 3)
	assert.Equal(t, OutcomeSucceeded, results[0].Outcome)
	assert.Equal(t, OutcomeFailed, results[1].Outcome)
	assert.Equal(t, FailurePermissionDenied, results[1].Class)
	assert.Equal(t, OutcomeSucceeded, results[2].Outcome)
	assert.NoDirExists(t, first)
	assert.NoDirExists(t, third)
}

func TestBatchEmitsIncrementalResults(t *testing.T) {
	e := newTestExecutor(&fakeRunner{}, fakePriv{}, &recordingFS{statErr: fs.ErrNotExist})

	attempts := []Attempt{
		{Item: fsItem("one", catalog.RiskLow), Target: markExists(resolve.Target{ItemID: "one", Path: `C:\one`})},
		{Item: fsItem("two", catalog.RiskLow), Target: markExists(resolve.Target{ItemID: "two", Path: `C:\two`})},
	}

	var streamed []string
	results := e.ExecuteBatch(context.Background(), attempts, func(r Result) {
		streamed = append(streamed, r.ItemID)
	})

	assert.Equal(t, []string{"one", "two"}, streamed)
	require.Len(t, results, 2)
}

func TestBatchHonorsCancelledDecisions(t *testing.T) {
	runner := &fakeRunner{}
	rec := &recordingFS{}
	e := newTestExecutor(runner, fakePriv{elevated: true}, rec)

	attempts := []Attempt{
		{
			Item:     fsItem("declined", catalog.RiskElevated),
			Target:   markExists(resolve.Target{ItemID: "declined", Path: `C:\declined`}),
			Decision: Cancelled,
		},
	}

	results := e.ExecuteBatch(context.Background(), attempts, nil)

	require.Len(t, results, 1)
	assert.Equal(t, OutcomeCancelled, results[0].Outcome)
	assert.Empty(t, rec.removed)
	assert.Empty(t, runner.calls)
}

// ─── Error classification ────────────────────────────────────────────────────

func TestClassifyRemoveError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureClass
	}{
		{"sharing violation", &fs.PathError{Err: syscall.Errno(32)}, FailureInUseOrLocked},
		{"lock violation", &fs.PathError{Err: syscall.Errno(33)}, FailureInUseOrLocked},
		{"permission", &fs.PathError{Err: fs.ErrPermission}, FailurePermissionDenied},
		{"other", errors.New("disk on fire"), FailureOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, reason := classifyRemoveError(tt.err)
			assert.Equal(t, tt.want, class)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestClassifyActionError(t *testing.T) {
	class, _ := classifyActionError(context.DeadlineExceeded)
	assert.Equal(t, FailureExternalTool, class)

	class, reason := classifyActionError(ErrUnsupported)
	assert.Equal(t, FailureOther, class)
	assert.Contains(t, reason, "not supported")

	class, _ = classifyActionError(errors.New("tool said no"))
	assert.Equal(t, FailureExternalTool, class)
}
