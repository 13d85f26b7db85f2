// Package git wraps the git command line for the few repository
// operations the workflow needs.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a git command in a directory and returns its combined
// output. Tests inject their own implementation.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// execRunner is the default Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Repository is a handle on a local git repository.
type Repository struct {
	dir    string
	runner Runner
}

// Option customizes a Repository.
type Option func(*Repository)

// WithRunner replaces the command runner. Used by tests.
func WithRunner(runner Runner) Option {
	return func(r *Repository) {
		r.runner = runner
	}
}

// NewRepository opens the repository containing dir. It fails with
// ErrNotRepository when dir is not inside a git worktree.
func NewRepository(ctx context.Context, dir string, opts ...Option) (*Repository, error) {
	repo := &Repository{dir: dir, runner: execRunner{}}
	for _, opt := range opts {
		opt(repo)
	}

	if _, err := repo.git(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}
	return repo, nil
}

// git runs one git command and wraps failures with the captured output.
func (r *Repository) git(ctx context.Context, args ...string) (string, error) {
	out, err := r.runner.Run(ctx, r.dir, args...)
	if err != nil {
		return "", &OpError{Op: args[0], Output: string(out), Err: err}
	}
	return strings.TrimSpace(string(out)), nil
}

// CurrentBranch returns the name of the checked-out branch.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve current branch: %w", err)
	}
	return out, nil
}

// Branches returns the local branch names.
func (r *Repository) Branches(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// IsClean reports whether the working tree has no uncommitted changes.
func (r *Repository) IsClean(ctx context.Context) (bool, error) {
	out, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check working tree: %w", err)
	}
	return out == "", nil
}

// CreateBranch creates name pointing at base without switching to it.
func (r *Repository) CreateBranch(ctx context.Context, name, base string) error {
	if _, err := r.git(ctx, "branch", name, base); err != nil {
		var opErr *OpError
		if errors.As(err, &opErr) && strings.Contains(opErr.Output, "already exists") {
			return fmt.Errorf("%w: %s", ErrBranchExists, name)
		}
		return err
	}
	return nil
}

// Checkout switches the working tree to the named branch.
func (r *Repository) Checkout(ctx context.Context, name string) error {
	_, err := r.git(ctx, "checkout", name)
	return err
}
