//go:build !windows

package core

import "runtime"

// OSVersionString reports the host OS. The catalog is Windows-specific, but
// the engine and its tests build everywhere.
func OSVersionString() string {
	return runtime.GOOS
}
