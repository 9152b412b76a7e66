package category

// Category groups books. Name is constrained to 3–50 characters; the
// description defaults to empty.
type Category struct {
	ID          string
	Name        string
	Description string
}

// UpdateInput carries a partial update. Nil fields keep the stored value.
type UpdateInput struct {
	Name        *string
	Description *string
}

const (
	MinNameLen = 3
	MaxNameLen = 50
)

// ValidateName returns the constraint violations for a category name.
func ValidateName(name string) []string {
	if name == "" {
		return []string{"name is required"}
	}
	if len(name) < MinNameLen || len(name) > MaxNameLen {
		return []string{"name must be between 3 and 50 characters"}
	}
	return nil
}
