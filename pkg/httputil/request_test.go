package httputil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com"}`))

	var dest struct {
		Email string `json:"email"`
	}
	require.NoError(t, ParseJSON(req, &dest))
	assert.Equal(t, "a@b.com", dest.Email)
}

func TestParseJSONInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))

	var dest map[string]string
	err := ParseJSON(req, &dest)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestParseJSONOrError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{{`))
	rec := httptest.NewRecorder()

	var dest map[string]string
	ok := ParseJSONOrError(rec, req, &dest)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseCredentialsForm(t *testing.T) {
	req := formRequest(url.Values{
		"username": {"user@example.com"},
		"password": {"TestPass123!"},
	})
	rec := httptest.NewRecorder()

	username, password, ok := ParseCredentialsForm(rec, req)
	require.True(t, ok)
	assert.Equal(t, "user@example.com", username)
	assert.Equal(t, "TestPass123!", password)
}

func TestParseCredentialsFormMissingFields(t *testing.T) {
	req := formRequest(url.Values{"username": {"user@example.com"}})
	rec := httptest.NewRecorder()

	_, _, ok := ParseCredentialsForm(rec, req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParsePathInt64(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users/42/active", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})

	val, err := ParsePathInt64(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), val)
}

func TestParsePathInt64Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)

	_, err := ParsePathInt64(req, "id")
	assert.Error(t, err)
}

func TestParsePathInt64OrError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users/abc/active", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()

	_, ok := ParsePathInt64OrError(rec, req, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/materials?page=3", nil)

	val, err := ParseQueryInt(req, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, val)
}

func TestParseQueryIntDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/materials", nil)

	val, err := ParseQueryInt(req, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, val)
}

func TestParseQueryIntInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/materials?page=abc", nil)

	_, err := ParseQueryInt(req, "page", 1)
	assert.Error(t, err)
}

func TestParseQueryString(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/materials?sort=name", nil)
	assert.Equal(t, "name", ParseQueryString(req, "sort", "date"))
	assert.Equal(t, "date", ParseQueryString(req, "missing", "date"))
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users?active=true", nil)

	val, err := ParseQueryBool(req, "active", false)
	require.NoError(t, err)
	assert.True(t, val)
}

func TestRequireNonEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.True(t, RequireNonEmpty(rec, "value", "email"))

	rec = httptest.NewRecorder()
	assert.False(t, RequireNonEmpty(rec, "", "email"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email is required")
}
