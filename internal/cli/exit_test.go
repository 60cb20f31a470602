package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dirlint/dirlint/internal/hooks"
	"github.com/dirlint/dirlint/pkg/checker"
)

func TestExitCode(t *testing.T) {
	violation := &checker.Violation{
		Kind: checker.KindUnexpectedFile,
		Path: "folder1/pngs/notes.txt",
		Rule: "pngs",
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: ExitOK,
		},
		{
			name: "violation",
			err:  violation,
			want: ExitViolation,
		},
		{
			name: "wrapped violation",
			err:  fmt.Errorf("check failed: %w", violation),
			want: ExitViolation,
		},
		{
			name: "not a repository",
			err:  hooks.ErrNotRepo,
			want: ExitNotRepo,
		},
		{
			name: "wrapped not a repository",
			err:  fmt.Errorf("%s: %w", "/tmp/somewhere", hooks.ErrNotRepo),
			want: ExitNotRepo,
		},
		{
			name: "hook exists",
			err:  hooks.ErrHookExists,
			want: ExitUsage,
		},
		{
			name: "generic error",
			err:  errors.New("boom"),
			want: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
