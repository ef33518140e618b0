package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpath/internal/middleware"
	"skillpath/internal/model"
)

func TestUserHandler_GetCurrentUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(req, rec)
	middleware.SetSession(c, &model.User{ID: 3, Username: "bob", Password: "hash"}, "sess")

	require.NoError(t, NewUserHandler().GetCurrentUser(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3,"username":"bob"}`, rec.Body.String())
}

func TestUserHandler_GetCurrentUserWithoutSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(req, rec)

	require.NoError(t, NewUserHandler().GetCurrentUser(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
