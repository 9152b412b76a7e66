package fault_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/marcelsud/bookstore-catalog/fault"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	t.Run("not found names the entity", func(t *testing.T) {
		err := fault.NewNotFound("Author")
		assert.Equal(t, "Author not found", err.Error())
	})

	t.Run("reference not found names the field", func(t *testing.T) {
		err := fault.NewReferenceNotFound("authorId", "Author", "abc-123")
		assert.Equal(t, "Invalid authorId. Author not found.", err.Error())
	})

	t.Run("malformed id includes the value", func(t *testing.T) {
		err := fault.NewMalformedID("Book", "not-a-uuid")
		assert.Equal(t, "Invalid id: not-a-uuid", err.Error())
	})

	t.Run("validation joins violations comma separated", func(t *testing.T) {
		err := fault.NewValidation("name is required", "name must be between 3 and 50 characters")
		assert.Equal(t, "name is required, name must be between 3 and 50 characters", err.Error())
	})

	t.Run("internal hides details", func(t *testing.T) {
		err := &fault.Error{Kind: fault.Internal}
		assert.Equal(t, "Internal Server Error", err.Error())
	})
}

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  *fault.Error
		want int
	}{
		{"validation", fault.NewValidation("name is required"), http.StatusBadRequest},
		{"reference not found", fault.NewReferenceNotFound("categoryId", "Category", "x"), http.StatusBadRequest},
		{"malformed id", fault.NewMalformedID("Author", "x"), http.StatusBadRequest},
		{"not found", fault.NewNotFound("Book"), http.StatusNotFound},
		{"internal", &fault.Error{Kind: fault.Internal}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestFrom(t *testing.T) {
	t.Run("preserves wrapped faults", func(t *testing.T) {
		wrapped := fmt.Errorf("selecting author: %w", fault.NewNotFound("Author"))
		f := fault.From(wrapped)
		assert.Equal(t, fault.NotFound, f.Kind)
		assert.Equal(t, "Author", f.Entity)
	})

	t.Run("classifies unknown errors as internal", func(t *testing.T) {
		f := fault.From(errors.New("connection refused"))
		assert.Equal(t, fault.Internal, f.Kind)
		assert.Equal(t, http.StatusInternalServerError, f.StatusCode())
	})
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("updating book: %w", fault.NewNotFound("Book"))
	assert.True(t, fault.IsKind(err, fault.NotFound))
	assert.False(t, fault.IsKind(err, fault.Validation))
	assert.False(t, fault.IsKind(errors.New("boom"), fault.NotFound))
}
