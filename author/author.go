package author

/* Represents an author in relation to the business, no transport tags.
 * The identifier is opaque and assigned by the store on insert.
 */
type Author struct {
	ID        string
	Name      string
	Biography string
}

// UpdateInput carries a partial update. Nil fields are "not supplied" and
// keep the stored value; a pointer to an empty string is a real value.
type UpdateInput struct {
	Name      *string
	Biography *string
}
