package server

import (
	"net/http"
	"testing"

	"aurum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "goldbug",
		"email":    "goldbug@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var signup struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &signup)
	assert.NotEmpty(t, signup.Token)
	assert.Equal(t, models.RoleUser, signup.User.Role)

	// Duplicate signup conflicts.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "goldbug",
		"email":    "goldbug@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "goldbug@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "goldbug@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeRequiresValidToken(t *testing.T) {
	srv, app, db := newTestServer(t)
	user := createTestUser(t, db, "author", models.RoleUser)

	resp := doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", bearerFor(t, srv, user), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me models.User
	decodeBody(t, resp, &me)
	assert.Equal(t, user.ID, me.ID)
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	srv, app, db := newTestServer(t)
	author := createTestUser(t, db, "author", models.RoleUser)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	resp := doJSON(t, app, http.MethodGet, "/api/users", bearerFor(t, srv, author), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/users", bearerFor(t, srv, admin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
