//go:build !windows

package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/priyamkaur/winbroom/internal/catalog"
)

// The catalog's OS actions only exist on Windows. These stubs keep the
// engine buildable elsewhere; every action reports ErrUnsupported.

type unsupportedRunner struct{}

func NewActionRunner(zerolog.Logger) ActionRunner {
	return unsupportedRunner{}
}

func (unsupportedRunner) Run(context.Context, catalog.Action) (int64, error) {
	return 0, ErrUnsupported
}

type noPrivilege struct{}

func NewPrivilegeChecker() PrivilegeChecker {
	return noPrivilege{}
}

func (noPrivilege) IsElevated() bool {
	return false
}
