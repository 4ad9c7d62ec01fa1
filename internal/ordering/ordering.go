// Package ordering holds the pure position logic shared by every sibling
// scope in the hierarchy (a user's workspaces, a workspace's folders, a
// folder's groups, a group's bookmarks).
//
// The invariant it guards: immediately after a create or reorder, the
// positions within a scope are exactly {0..n-1}, dense and zero-based.
package ordering

import (
	"fmt"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
)

// Next returns the position for an item appended to a scope whose current
// maximum position is maxPos (-1 for an empty scope).
func Next(maxPos int) int {
	return maxPos + 1
}

// CheckPermutation verifies that ordered is exactly a permutation of current.
// A wrong length, a duplicate, or an id outside the scope all reject the
// whole request; there is no best-effort merge.
func CheckPermutation(current, ordered []string) error {
	if len(ordered) != len(current) {
		return &domain.ReorderError{
			Message: fmt.Sprintf("orderedIds must contain all %d members of the scope, got %d", len(current), len(ordered)),
		}
	}
	members := make(map[string]bool, len(current))
	for _, id := range current {
		members[id] = true
	}
	seen := make(map[string]bool, len(ordered))
	for _, id := range ordered {
		if seen[id] {
			return &domain.ReorderError{Message: fmt.Sprintf("duplicate id %q in orderedIds", id)}
		}
		seen[id] = true
		if !members[id] {
			return &domain.ReorderError{Message: fmt.Sprintf("id %q is not a member of the scope", id)}
		}
	}
	return nil
}

// IsDense reports whether positions is exactly {0..n-1} in any order.
func IsDense(positions []int) bool {
	seen := make([]bool, len(positions))
	for _, p := range positions {
		if p < 0 || p >= len(positions) || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
