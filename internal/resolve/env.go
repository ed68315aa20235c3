package resolve

import (
	"os"
	"strings"
)

// Env is the environment context paths are resolved against. It wraps a
// variable lookup so tests can substitute a fixed environment.
type Env struct {
	lookup func(name string) (string, bool)
}

// OSEnv returns an Env backed by the process environment.
func OSEnv() Env {
	return Env{lookup: os.LookupEnv}
}

// MapEnv returns an Env backed by a fixed map, for tests. Lookup is
// case-insensitive like the real Windows environment.
func MapEnv(vars map[string]string) Env {
	folded := make(map[string]string, len(vars))
	for k, v := range vars {
		folded[strings.ToUpper(k)] = v
	}
	return Env{lookup: func(name string) (string, bool) {
		v, ok := folded[strings.ToUpper(name)]
		return v, ok
	}}
}

// envFallbacks supplies the standard defaults for variables that have a
// well-known location when unset. Variables absent from this table (like
// USERPROFILE) are genuinely required: without them the target location
// cannot be known at all.
var envFallbacks = map[string]string{
	"WINDIR":            `C:\Windows`,
	"SYSTEMDRIVE":       `C:`,
	"PROGRAMDATA":       `C:\ProgramData`,
	"PROGRAMFILES":      `C:\Program Files`,
	"PROGRAMFILES(X86)": `C:\Program Files (x86)`,
}

// Lookup resolves a variable, consulting the fallback table for variables
// that have a conventional default location.
func (e Env) Lookup(name string) (string, bool) {
	if v, ok := e.lookup(name); ok && v != "" {
		return v, true
	}
	if fb, ok := envFallbacks[strings.ToUpper(name)]; ok {
		return fb, true
	}
	return "", false
}
