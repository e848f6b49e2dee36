package reason

import "fmt"

// CollisionError reports two records with different texts resolving to the
// same id. This is a data-integrity failure: the corpus must not be written
// back while it holds.
type CollisionError struct {
	ID    string
	TextA string
	TextB string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("id collision on %q: %q vs %q", e.ID, e.TextA, e.TextB)
}

// Validate checks that every id in the corpus maps to exactly one text.
// Records that share both id and text are duplicates, not collisions, and
// pass unchanged.
func Validate(c Corpus) error {
	seen := make(map[string]string, len(c))
	for _, r := range c {
		if prev, ok := seen[r.ID]; ok && prev != r.Text {
			return &CollisionError{ID: r.ID, TextA: prev, TextB: r.Text}
		}
		seen[r.ID] = r.Text
	}
	return nil
}
