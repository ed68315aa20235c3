package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"
)

// ErrUnsupported is returned by action runners on platforms where the
// underlying OS utility does not exist.
var ErrUnsupported = errors.New("engine: action not supported on this platform")

// Windows sharing/lock errors surface through os.RemoveAll as
// syscall.Errno values.
const (
	errnoSharingViolation = syscall.Errno(32) // ERROR_SHARING_VIOLATION
	errnoLockViolation    = syscall.Errno(33) // ERROR_LOCK_VIOLATION
)

// classifyRemoveError maps a filesystem removal error onto the failure
// taxonomy. Not-exist errors are handled by the caller before this point.
func classifyRemoveError(err error) (FailureClass, string) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case errnoSharingViolation, errnoLockViolation:
			return FailureInUseOrLocked, err.Error()
		}
	}
	if errors.Is(err, fs.ErrPermission) {
		return FailurePermissionDenied, err.Error()
	}
	return FailureOther, err.Error()
}

// classifyActionError maps an OS-utility invocation error onto the failure
// taxonomy. Tool exit statuses pass through opaquely.
func classifyActionError(err error) (FailureClass, string) {
	if errors.Is(err, ErrUnsupported) {
		return FailureOther, err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureExternalTool, "tool timed out"
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return FailureExternalTool, fmt.Sprintf("tool exited with status %d", exitErr.ExitCode())
	}
	return FailureExternalTool, err.Error()
}
