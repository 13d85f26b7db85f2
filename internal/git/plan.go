package git

import "slices"

// ActionKind enumerates the ways to realize a target branch.
type ActionKind int

const (
	// ActionCreate creates the branch from a base and checks it out.
	ActionCreate ActionKind = iota
	// ActionCheckout switches to the already-existing branch.
	ActionCheckout
	// ActionCancel leaves the repository untouched.
	ActionCancel
)

// Action is the decision for one target branch. Base is set only for
// ActionCreate and names the branch the new one forks from.
type Action struct {
	Kind ActionKind
	Base string
}

// Chooser resolves the existing-branch conflict. It is invoked only when
// the target already exists and should return ActionCheckout or
// ActionCancel.
type Chooser func(target string) (ActionKind, error)

// Decide picks the action for target. A nonexistent target is always
// created from the active branch; an existing one defers to choose. Any
// unexpected answer degrades to ActionCancel so a confused chooser can
// never mutate the repository.
func Decide(existing []string, active, target string, choose Chooser) (Action, error) {
	if !slices.Contains(existing, target) {
		return Action{Kind: ActionCreate, Base: active}, nil
	}

	kind, err := choose(target)
	if err != nil {
		return Action{Kind: ActionCancel}, err
	}
	if kind != ActionCheckout {
		kind = ActionCancel
	}
	return Action{Kind: kind}, nil
}
