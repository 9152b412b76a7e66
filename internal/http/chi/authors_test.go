package chi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/marcelsud/bookstore-catalog/author"
	"github.com/marcelsud/bookstore-catalog/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetAuthors(t *testing.T) {
	h, m := newTestHandler(t)
	all := []author.Author{
		{ID: "a1", Name: "Ursula K. Le Guin", Biography: "Science fiction and fantasy."},
		{ID: "a2", Name: "Jorge Amado"},
	}
	m.authors.On("List", mock.Anything).Return(all, nil)

	w := doRequest(t, h, http.MethodGet, "/api/author", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var results []authorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Equal(t, len(all), len(results))
	assert.Equal(t, "Ursula K. Le Guin", results[0].Name)
}

func TestPostAuthors(t *testing.T) {
	h, m := newTestHandler(t)
	created := author.Author{ID: "a1", Name: "Clarice Lispector", Biography: "Novelist."}
	m.authors.On("Create", mock.Anything, "Clarice Lispector", "Novelist.").Return(created, nil)

	w := doRequest(t, h, http.MethodPost, "/api/author", map[string]string{
		"name":      "Clarice Lispector",
		"biography": "Novelist.",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var result authorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "a1", result.ID)
	assert.Equal(t, "Clarice Lispector", result.Name)
}

func TestPostAuthorsMissingName(t *testing.T) {
	h, m := newTestHandler(t)
	m.authors.On("Create", mock.Anything, "", "").
		Return(author.Author{}, fault.NewValidation("name is required"))

	w := doRequest(t, h, http.MethodPost, "/api/author", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
	assert.Equal(t, "name is required", env.Message)
}

func TestGetAuthorNotFound(t *testing.T) {
	h, m := newTestHandler(t)
	m.authors.On("Get", mock.Anything, "a-missing").
		Return(author.Author{}, fault.NewNotFound("Author"))

	w := doRequest(t, h, http.MethodGet, "/api/author/a-missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
	assert.Equal(t, "Author not found", env.Message)
}

func TestPutAuthorPartial(t *testing.T) {
	h, m := newTestHandler(t)
	bio := "Updated biography."
	updated := author.Author{ID: "a1", Name: "Jorge Amado", Biography: bio}
	m.authors.On("Update", mock.Anything, "a1", author.UpdateInput{Biography: &bio}).
		Return(updated, nil)

	w := doRequest(t, h, http.MethodPut, "/api/author/a1", map[string]string{
		"biography": bio,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var result authorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Jorge Amado", result.Name)
	assert.Equal(t, bio, result.Biography)
}

func TestDeleteAuthor(t *testing.T) {
	h, m := newTestHandler(t)
	m.authors.On("Delete", mock.Anything, "a1").Return(nil)

	w := doRequest(t, h, http.MethodDelete, "/api/author/a1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var result messageResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Author deleted successfully", result.Message)
}

func TestDeleteAuthorNotFound(t *testing.T) {
	h, m := newTestHandler(t)
	m.authors.On("Delete", mock.Anything, "a-missing").
		Return(fault.NewNotFound("Author"))

	w := doRequest(t, h, http.MethodDelete, "/api/author/a-missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
	assert.Equal(t, "Author not found", env.Message)
}
