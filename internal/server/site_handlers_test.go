package server

import (
	"net/http"
	"testing"

	"aurum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	_, app, db := newTestServer(t)

	// Every form field is required.
	resp := doJSON(t, app, http.MethodPost, "/api/subscribe", "", map[string]any{
		"email": "reader@example.com", "accepted_terms": true,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/subscribe", "", map[string]any{
		"first_name": "Rhea", "last_name": "Lee",
		"email": "not-an-email", "accepted_terms": true,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Declining the terms is rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/subscribe", "", map[string]any{
		"first_name": "Rhea", "last_name": "Lee",
		"email": "reader@example.com", "accepted_terms": false,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody models.ErrorResponse
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "You must accept the terms and conditions", errBody.Error)

	resp = doJSON(t, app, http.MethodPost, "/api/subscribe", "", map[string]any{
		"first_name": "Rhea", "last_name": "Lee",
		"email": "Reader@Example.com", "accepted_terms": true,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var stored models.Subscriber
	require.NoError(t, db.Where("email = ?", "reader@example.com").First(&stored).Error)
	assert.Equal(t, "Rhea", stored.FirstName)
	assert.Equal(t, "Lee", stored.LastName)
	assert.True(t, stored.AcceptedTerms)

	// Same address again, any casing: acknowledged, not an error.
	resp = doJSON(t, app, http.MethodPost, "/api/subscribe", "", map[string]any{
		"first_name": "Rhea", "last_name": "Lee",
		"email": "reader@example.com", "accepted_terms": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "You are already subscribed!", body["message"])

	var count int64
	require.NoError(t, db.Model(&models.Subscriber{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestContactForm(t *testing.T) {
	srv, app, db := newTestServer(t)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	// Subject is required along with the rest.
	resp := doJSON(t, app, http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Sam", "email": "sam@example.com", "message": "Call me about bullion",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Sam", "email": "sam@example.com",
		"subject": "Bulk order", "message": "Call me about bullion",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/admin/messages", bearerFor(t, srv, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msgs []models.ContactMessage
	decodeBody(t, resp, &msgs)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Bulk order", msgs[0].Subject)
	assert.Equal(t, "Call me about bullion", msgs[0].Message)
}

func TestStatistics(t *testing.T) {
	srv, app, db := newTestServer(t)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	author := createTestUser(t, db, "author", models.RoleUser)

	resp := doJSON(t, app, http.MethodPut, "/api/admin/statistics", bearerFor(t, srv, author),
		map[string]any{"name": "clients_served", "value": 1500})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/admin/statistics", bearerFor(t, srv, admin),
		map[string]any{"name": "clients_served", "value": 1500})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Setting the same counter again overwrites it.
	resp = doJSON(t, app, http.MethodPut, "/api/admin/statistics", bearerFor(t, srv, admin),
		map[string]any{"name": "clients_served", "value": 1600})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/statistics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats map[string]int64
	decodeBody(t, resp, &stats)
	assert.EqualValues(t, 1600, stats["clients_served"])
}
