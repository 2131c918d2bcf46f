package engine

import "fmt"

// UnknownCategoryError indicates an Apply targeted a category outside the
// fixed ledger schema.
type UnknownCategoryError struct {
	Ledger   string // "xp" or "debt"
	Category string
}

func (e UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s category: %q", e.Ledger, e.Category)
}
