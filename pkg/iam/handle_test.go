package iam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-user-admin/pkg/errors"
	"github.com/tendant/simple-user-admin/pkg/login"
)

func setupHandle(t *testing.T) (*chi.Mux, *InMemoryIamRepository) {
	repo := NewInMemoryIamRepository()
	repo.SeedRole("ADMIN")
	repo.SeedRole("USER")
	handle := NewHandle(NewIamService(repo))
	r := chi.NewRouter()
	handle.RegisterRoutes(r)
	return r, repo
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateUserEndpoint(t *testing.T) {
	r, _ := setupHandle(t)

	w := doJSON(t, r, "POST", "/api/users",
		`{"name":"Alice","age":30,"email":"alice@example.com","password":"secret1","roles":["USER"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var dto UserDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "Alice", dto.Name)
	assert.Equal(t, []string{"USER"}, dto.Roles)
	assert.Nil(t, dto.Password)
	assert.Contains(t, w.Body.String(), `"password":null`)
}

func TestCreateUserValidation(t *testing.T) {
	r, _ := setupHandle(t)

	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{
			name:    "missing name",
			body:    `{"age":30,"email":"a@x.com","password":"secret1","roles":["USER"]}`,
			field:   "name",
			message: "Name is required",
		},
		{
			name:    "name too short",
			body:    `{"name":"A","age":30,"email":"a@x.com","password":"secret1","roles":["USER"]}`,
			field:   "name",
			message: "Name must be 2-50 characters",
		},
		{
			name:    "age below minimum",
			body:    `{"name":"Alice","age":11,"email":"a@x.com","password":"secret1","roles":["USER"]}`,
			field:   "age",
			message: "Age must be at least 12",
		},
		{
			name:    "age above maximum",
			body:    `{"name":"Alice","age":131,"email":"a@x.com","password":"secret1","roles":["USER"]}`,
			field:   "age",
			message: "Age must be at most 130",
		},
		{
			name:    "bad email",
			body:    `{"name":"Alice","age":30,"email":"not-an-email","password":"secret1","roles":["USER"]}`,
			field:   "email",
			message: "Invalid email format",
		},
		{
			name:    "short password",
			body:    `{"name":"Alice","age":30,"email":"a@x.com","password":"abc","roles":["USER"]}`,
			field:   "password",
			message: "Password must be at least 6 characters",
		},
		{
			name:    "no roles",
			body:    `{"name":"Alice","age":30,"email":"a@x.com","password":"secret1","roles":[]}`,
			field:   "roles",
			message: "At least one role must be selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, "POST", "/api/users", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp errors.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, http.StatusBadRequest, resp.Status)
			assert.Equal(t, tt.message, resp.Errors[tt.field])
			assert.NotEmpty(t, resp.Timestamp)
		})
	}
}

func TestCreateUserWithoutPassword(t *testing.T) {
	r, _ := setupHandle(t)

	w := doJSON(t, r, "POST", "/api/users",
		`{"name":"Alice","age":30,"email":"alice@example.com","roles":["USER"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var dto UserDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "Alice", dto.Name)
	assert.Nil(t, dto.Password)
}

func TestCreateUserDuplicateEmailEndpoint(t *testing.T) {
	r, _ := setupHandle(t)

	body := `{"name":"Alice","age":30,"email":"alice@example.com","password":"secret1","roles":["USER"]}`
	w := doJSON(t, r, "POST", "/api/users", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/api/users", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "alice@example.com")
}

func TestUserLifecycleEndpoints(t *testing.T) {
	r, _ := setupHandle(t)

	w := doJSON(t, r, "POST", "/api/users",
		`{"name":"Alice","age":30,"email":"alice@example.com","password":"secret1","roles":["USER"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created UserDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, "GET", "/api/users/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched UserDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)

	w = doJSON(t, r, "PUT", "/api/users/"+created.ID.String(),
		`{"name":"Alice","age":30,"email":"alice@example.com","roles":["ADMIN"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated UserDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, []string{"ADMIN"}, updated.Roles)

	w = doJSON(t, r, "DELETE", "/api/users/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, r, "GET", "/api/users/"+created.ID.String(), "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "DELETE", "/api/users/"+created.ID.String(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFindUsersEndpoint(t *testing.T) {
	r, _ := setupHandle(t)

	w := doJSON(t, r, "GET", "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	doJSON(t, r, "POST", "/api/users",
		`{"name":"Alice","age":30,"email":"alice@example.com","password":"secret1","roles":["USER"]}`)
	doJSON(t, r, "POST", "/api/users",
		`{"name":"Bob","age":40,"email":"bob@example.com","password":"secret1","roles":["ADMIN","USER"]}`)

	w = doJSON(t, r, "GET", "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)

	var dtos []UserDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dtos))
	require.Len(t, dtos, 2)
	assert.Equal(t, "Alice", dtos[0].Name)
	assert.Equal(t, []string{"ADMIN", "USER"}, dtos[1].Roles)
}

func TestGetCurrentUser(t *testing.T) {
	r, _ := setupHandle(t)

	w := doJSON(t, r, "POST", "/api/users",
		`{"name":"Alice","age":30,"email":"alice@example.com","password":"secret1","roles":["ADMIN"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created UserDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	t.Run("anonymous gets 401", func(t *testing.T) {
		w := doJSON(t, r, "GET", "/api/auth/user", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("session principal gets own dto", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/auth/user", nil)
		req = req.WithContext(context.WithValue(req.Context(), login.AuthUserKey, &login.AuthUser{
			UserId:   created.ID.String(),
			UserUuid: created.ID,
			Roles:    []string{"ADMIN"},
		}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var dto UserDto
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
		assert.Equal(t, created, dto)
	})
}

func TestGetUserInvalidId(t *testing.T) {
	r, _ := setupHandle(t)

	w := doJSON(t, r, "GET", "/api/users/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
