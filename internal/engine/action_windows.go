//go:build windows

package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"

	"github.com/priyamkaur/winbroom/internal/catalog"
)

// componentCleanupTimeout bounds the DISM invocation; component store
// cleanup can legitimately run for many minutes.
const componentCleanupTimeout = 30 * time.Minute

// ─── Shell32 Syscalls ────────────────────────────────────────────────────────

var (
	modShell32          = syscall.NewLazyDLL("shell32.dll")
	procEmptyRecycleBin = modShell32.NewProc("SHEmptyRecycleBinW")
	procQueryRecycleBin = modShell32.NewProc("SHQueryRecycleBinW")
)

const (
	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004
)

// shQueryRBInfo mirrors the Windows SHQUERYRBINFO struct. Go's natural
// alignment adds padding after cbSize on AMD64, matching the C layout.
type shQueryRBInfo struct {
	cbSize      uint32
	i64Size     int64
	i64NumItems int64
}

// ─── Action Runner ───────────────────────────────────────────────────────────

type windowsRunner struct {
	log zerolog.Logger
}

// NewActionRunner returns the runner that drives the real Windows
// utilities behind OS-action catalog items.
func NewActionRunner(log zerolog.Logger) ActionRunner {
	return &windowsRunner{log: log}
}

func (r *windowsRunner) Run(ctx context.Context, action catalog.Action) (int64, error) {
	switch action {
	case catalog.ActionEmptyRecycleBin:
		return r.emptyRecycleBin()
	case catalog.ActionDiskCleanup:
		return 0, r.runTool(ctx, "cleanmgr.exe")
	case catalog.ActionComponentCleanup:
		ctx, cancel := context.WithTimeout(ctx, componentCleanupTimeout)
		defer cancel()
		return 0, r.runTool(ctx, "Dism.exe",
			"/online", "/Cleanup-Image", "/StartComponentCleanup", "/ResetBase")
	default:
		return 0, fmt.Errorf("unknown action %d", action)
	}
}

// emptyRecycleBin queries the bin size first so the reclaimed bytes can be
// reported, then empties it on all drives via the Shell API.
func (r *windowsRunner) emptyRecycleBin() (int64, error) {
	var info shQueryRBInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	var size int64
	ret, _, _ := procQueryRecycleBin.Call(
		0, // NULL = query all drives
		uintptr(unsafe.Pointer(&info)),
	)
	if ret == 0 {
		size = info.i64Size
	}

	flags := uintptr(sherbNoConfirmation | sherbNoProgressUI | sherbNoSound)
	ret, _, _ = procEmptyRecycleBin.Call(0, 0, flags)

	hr := uint32(ret)
	// S_OK (0) = success, E_UNEXPECTED (0x8000FFFF) = bin already empty.
	if hr != 0 && hr != 0x8000FFFF {
		return 0, fmt.Errorf("SHEmptyRecycleBinW failed: HRESULT 0x%08x", hr)
	}

	return size, nil
}

// runTool invokes an OS utility and surfaces a trimmed slice of its output
// on failure; the exit status itself passes through via *exec.ExitError.
func (r *windowsRunner) runTool(ctx context.Context, name string, args ...string) error {
	r.log.Debug().Str("tool", name).Strs("args", args).Msg("running system tool")

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if msg := trimOutput(output); msg != "" {
		return fmt.Errorf("%w: %s", err, msg)
	}
	return err
}

// trimOutput truncates tool output to 200 bytes on a valid UTF-8 boundary.
func trimOutput(output []byte) string {
	s := strings.TrimSpace(string(output))
	if len(s) <= 200 {
		return s
	}
	s = s[:200]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// ─── Privilege ───────────────────────────────────────────────────────────────

type windowsPrivilege struct{}

// NewPrivilegeChecker reports elevation via the process token.
func NewPrivilegeChecker() PrivilegeChecker {
	return windowsPrivilege{}
}

func (windowsPrivilege) IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
