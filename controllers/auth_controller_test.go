package controllers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"tatvadirect/backend/controllers/testutils"
	"tatvadirect/backend/models"
)

func TestSignupReturnsTokenWithoutPassword(t *testing.T) {
	r, store, _ := newRouter(t)

	w := testutils.DoJSON(t, r, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name":     "Asha",
		"email":    "Asha@Example.com",
		"password": "secret123",
		"company":  "Asha Builders",
		"userType": "service_provider",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotContains(t, w.Body.String(), "password")
	require.NotContains(t, w.Body.String(), "$2a$")

	body := testutils.Decode(t, w)
	require.Equal(t, "User created successfully", body["message"])
	require.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	require.Equal(t, "asha@example.com", user["email"])
	require.Equal(t, "service_provider", user["userType"])
	require.Equal(t, true, user["isActive"])

	stored, err := store.GetUserByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", stored.Password)
}

func TestSignupDuplicateEmail(t *testing.T) {
	r, _, _ := newRouter(t)
	payload := map[string]any{"name": "A", "email": "a@example.com", "password": "secret123"}

	w := testutils.DoJSON(t, r, http.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutils.DoJSON(t, r, http.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := testutils.Decode(t, w)
	require.Equal(t, "error", body["status"])
	require.Equal(t, "email already exists", body["message"])
}

func TestSignupValidationErrors(t *testing.T) {
	r, _, _ := newRouter(t)

	w := testutils.DoJSON(t, r, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name":     "A",
		"password": "abc",
		"userType": "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := testutils.Decode(t, w)
	require.Equal(t, "Validation Error", body["message"])
	errs := body["errors"].([]any)
	require.Contains(t, errs, "email is required")
	require.Contains(t, errs, "password must be at least 6")
	require.Contains(t, errs, "userType must be one of: service_provider supplier")
}

func TestSignupMalformedBody(t *testing.T) {
	r, _, _ := newRouter(t)
	w := testutils.DoJSON(t, r, http.MethodPost, "/api/auth/signup", "", `{"name":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid request body", testutils.Decode(t, w)["message"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, store, _ := newRouter(t)
	testutils.SeedUser(t, store, "buyer@example.com", models.UserTypeServiceProvider)

	for _, creds := range []map[string]any{
		{"email": "buyer@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": testutils.Password},
	} {
		w := testutils.DoJSON(t, r, http.MethodPost, "/api/auth/login", "", creds)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "Invalid email or password", testutils.Decode(t, w)["message"])
	}
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	r, store, _ := newRouter(t)
	u := testutils.SeedUser(t, store, "buyer@example.com", models.UserTypeServiceProvider)
	require.Nil(t, u.LastLogin)

	w := testutils.DoJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "BUYER@example.com", "password": testutils.Password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := testutils.Decode(t, w)
	require.Equal(t, "Login successful", body["message"])
	require.NotContains(t, w.Body.String(), "$2a$")

	stored, err := store.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	r, store, _ := newRouter(t)
	u := testutils.SeedUser(t, store, "off@example.com", models.UserTypeSupplier)
	u.IsActive = false
	require.NoError(t, store.UpdateUser(context.Background(), u))

	w := testutils.DoJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "off@example.com", "password": testutils.Password,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Account is deactivated", testutils.Decode(t, w)["message"])
}

func TestAdminLoginProvisionsAdmin(t *testing.T) {
	r, store, cfg := newRouter(t)
	creds := map[string]any{"email": cfg.AdminEmail, "password": cfg.AdminPassword}

	for i := 0; i < 2; i++ {
		w := testutils.DoJSON(t, r, http.MethodPost, "/api/auth/login", "", creds)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := testutils.Decode(t, w)
		require.Equal(t, "Admin login successful", body["message"])
		require.Equal(t, "admin", body["user"].(map[string]any)["userType"])
	}

	users, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, models.UserTypeAdmin, users[0].UserType)
}

func TestAdminLoginPromotesExistingAccount(t *testing.T) {
	r, store, cfg := newRouter(t)
	u := testutils.SeedUser(t, store, cfg.AdminEmail, models.UserTypeSupplier)

	w := testutils.DoJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": cfg.AdminEmail, "password": cfg.AdminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := store.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, models.UserTypeAdmin, stored.UserType)
}

func TestAuthProfile(t *testing.T) {
	r, store, cfg := newRouter(t)
	u := testutils.SeedUser(t, store, "me@example.com", models.UserTypeSupplier)

	w := testutils.DoJSON(t, r, http.MethodGet, "/api/auth/profile", testutils.Token(t, cfg, u.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, strings.Contains(w.Body.String(), "password"))
	user := testutils.Decode(t, w)["user"].(map[string]any)
	require.Equal(t, u.ID, user["id"])
	require.Equal(t, "me@example.com", user["email"])
}
