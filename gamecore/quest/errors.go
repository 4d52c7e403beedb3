package quest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured means there is no quest content to serve or the
	// player record is missing.
	ErrNotConfigured = errors.New("quest content is not configured")

	// ErrChoiceInvalid covers unknown choices and choices that do not
	// belong to the player's current node.
	ErrChoiceInvalid = errors.New("quest choice is invalid")

	// ErrNodeNotFound is an internal consistency failure: a referenced
	// node row is gone.
	ErrNodeNotFound = errors.New("quest node not found")
)

// ValidationError rejects a blueprint batch before any mutation is applied.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("quest blueprint validation failed: %s", strings.Join(e.Problems, "; "))
}
