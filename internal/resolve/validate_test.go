package resolve

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExistingPath(t *testing.T) {
	dir := t.TempDir()

	got := Validate(Target{ItemID: "x", Path: dir})
	assert.Equal(t, Exists, got.Existence)
	assert.False(t, got.StatDenied)
}

func TestValidateMissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "definitely", "not", "here")

	got := Validate(Target{ItemID: "x", Path: missing})
	assert.Equal(t, NotFound, got.Existence)
	assert.False(t, got.StatDenied)
}

func TestValidateSkipsActionTargets(t *testing.T) {
	got := Validate(Target{ItemID: "recycle-bin"})
	assert.Equal(t, Unresolved, got.Existence)
}

func TestValidatePermissionDeniedDisplaysAsNotFound(t *testing.T) {
	denied := func(string) (os.FileInfo, error) {
		return nil, &fs.PathError{Op: "stat", Path: `C:\locked`, Err: fs.ErrPermission}
	}

	got := validateWithStat(Target{ItemID: "x", Path: `C:\locked`}, denied)
	assert.Equal(t, NotFound, got.Existence, "denied paths display as not found")
	assert.True(t, got.StatDenied, "but the denial is recorded for execution")
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	in := Target{ItemID: "x", Path: filepath.Join(t.TempDir(), "gone")}
	out := Validate(in)

	require.Equal(t, Unresolved, in.Existence)
	require.Equal(t, NotFound, out.Existence)
}
