package git

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the conditions the workflow branches on.
var (
	// ErrNotRepository means the working directory is not inside a git
	// worktree.
	ErrNotRepository = errors.New("not a git repository")

	// ErrBranchExists means branch creation hit an existing ref.
	ErrBranchExists = errors.New("branch already exists")
)

// OpError carries a failed git operation together with its captured
// output, which is usually the only useful diagnostic git gives.
type OpError struct {
	Op     string
	Output string
	Err    error
}

func (e *OpError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Op)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OpError) Unwrap() error { return e.Err }
