// Package protected guards against destructive operations on paths that must
// never be removed, such as the Windows directory and Program Files.
package protected

import (
	"path/filepath"
	"strings"
)

// List holds normalized absolute paths that refuse removal, either exactly
// or as an ancestor of the candidate path.
type List struct {
	roots []string

	// subtrees block every descendant, not just the root itself.
	// exceptions carve allowed islands (e.g. %WINDIR%\Temp) back out.
	subtrees   []string
	exceptions []string
}

// NewList builds a List from the given paths. Empty entries are dropped.
func NewList(paths ...string) *List {
	l := &List{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		l.roots = append(l.roots, normalize(p))
	}
	return l
}

// DefaultList returns the protected set for the current environment built
// from a lookup over environment variables, with the standard fallbacks for
// installations on non-C: drives.
func DefaultList(lookup func(string) (string, bool)) *List {
	get := func(name, fallback string) string {
		if v, ok := lookup(name); ok && v != "" {
			return v
		}
		return fallback
	}

	w := get("WINDIR", `C:\Windows`)
	sd := get("SYSTEMDRIVE", `C:`) + `\`

	l := NewList(
		w,
		filepath.Join(w, "System32"),
		filepath.Join(w, "SysWOW64"),
		filepath.Join(w, "WinSxS"),
		filepath.Join(w, "System32", "config"),
		filepath.Join(sd, "Boot"),
		filepath.Join(sd, "EFI"),
		get("PROGRAMFILES", `C:\Program Files`),
		get("PROGRAMFILES(X86)", `C:\Program Files (x86)`),
		get("PROGRAMDATA", `C:\ProgramData`),
		filepath.Join(sd, "Users"),
		filepath.Join(sd, "Recovery"),
		sd,
	)

	// The whole Windows tree is off limits, with the temp directory as the
	// one cleanable island inside it.
	l.subtrees = []string{normalize(w)}
	l.exceptions = []string{normalize(filepath.Join(w, "Temp"))}

	return l
}

// Blocks reports whether path is one of the protected roots, an ancestor of
// one, or a drive root. Descendants of a protected root are allowed — the
// catalog legitimately cleans caches under Program Files — but removing the
// root itself, or anything above it, is always refused.
func (l *List) Blocks(path string) bool {
	p := normalize(path)
	if p == "" || isDriveRoot(p) {
		return true
	}
	for _, root := range l.roots {
		if p == root {
			return true
		}
		// An ancestor of a protected root would take the root with it.
		if strings.HasPrefix(root, p+`\`) || strings.HasPrefix(root, p+`/`) {
			return true
		}
	}
	for _, sub := range l.subtrees {
		if !under(p, sub) {
			continue
		}
		allowed := false
		for _, exc := range l.exceptions {
			if p == exc || under(p, exc) {
				allowed = true
				break
			}
		}
		if !allowed {
			return true
		}
	}
	return false
}

// under reports whether p is a strict descendant of dir.
func under(p, dir string) bool {
	return strings.HasPrefix(p, dir+`\`) || strings.HasPrefix(p, dir+`/`)
}

func normalize(p string) string {
	return strings.ToLower(filepath.Clean(p))
}

// isDriveRoot reports whether p is a bare drive like `c:` or `c:\`.
func isDriveRoot(p string) bool {
	if p == "/" || p == `\` {
		return true
	}
	if len(p) == 2 && p[1] == ':' {
		return true
	}
	if len(p) == 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
		return true
	}
	return false
}
