package cli

import (
	"errors"

	"github.com/dirlint/dirlint/internal/hooks"
	"github.com/dirlint/dirlint/pkg/checker"
)

// Exit codes returned by the dirlint binary.
const (
	ExitOK        = 0 // tree conforms
	ExitViolation = 1 // structural violation found
	ExitUsage     = 2 // bad invocation or environment error
	ExitNotRepo   = 3 // hooks install target is not a git repository
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var v *checker.Violation
	if errors.As(err, &v) {
		return ExitViolation
	}
	if errors.Is(err, hooks.ErrNotRepo) {
		return ExitNotRepo
	}
	return ExitUsage
}
