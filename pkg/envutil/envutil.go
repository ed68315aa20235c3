// Package envutil expands Windows-style environment variable references in
// path templates.
package envutil

import (
	"fmt"
	"os"
	"strings"
)

// LookupFunc resolves an environment variable name to its value. The second
// return reports whether the variable is defined.
type LookupFunc func(name string) (string, bool)

// Expand replaces every %VAR% reference in path using lookup. A reference to
// an undefined variable yields an error naming the variable; a literal
// percent sign that doesn't open a reference is left untouched, and "%%"
// escapes a single percent.
func Expand(path string, lookup LookupFunc) (string, error) {
	if !strings.Contains(path, "%") {
		return path, nil
	}

	var b strings.Builder
	rest := path
	for {
		open := strings.IndexByte(rest, '%')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open+1:], '%')
		if end < 0 {
			// Unpaired percent, keep literal.
			b.WriteString(rest)
			return b.String(), nil
		}
		name := rest[open+1 : open+1+end]
		b.WriteString(rest[:open])
		if name == "" {
			// "%%" escapes a single percent.
			b.WriteByte('%')
		} else {
			val, ok := lookup(name)
			if !ok {
				return "", fmt.Errorf("environment variable %%%s%% is not set", name)
			}
			b.WriteString(val)
		}
		rest = rest[open+end+2:]
	}
}

// ExpandWindowsEnv expands %VAR% references against the process environment.
// Undefined variables expand to the empty string.
func ExpandWindowsEnv(path string) string {
	out, err := Expand(path, func(name string) (string, bool) {
		v, _ := os.LookupEnv(name)
		return v, true
	})
	if err != nil {
		return path
	}
	return out
}
