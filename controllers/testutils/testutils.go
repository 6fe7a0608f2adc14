package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"tatvadirect/backend/config"
	"tatvadirect/backend/models"
	"tatvadirect/backend/utils"
)

const Password = "secret123"

// Config returns settings suitable for handler tests: no artificial delays,
// no Gemini key.
func Config() config.Config {
	return config.Config{
		Port:           "0",
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		AdminEmail:     "admin@tatvadirect.com",
		AdminPassword:  "TatvaAdmin@2024",
		CORSOrigins:    []string{"*"},
		MaxUploadBytes: 1 << 20,
		GeminiModel:    "gemini-2.5-flash",
	}
}

// SeedUser stores an active user of the given type whose password is Password.
func SeedUser(t *testing.T, store *MemoryStore, email, userType string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(Password)
	require.NoError(t, err)
	u := &models.User{
		Name:     "Test " + userType,
		Email:    email,
		Password: hash,
		UserType: userType,
		Company:  email + " Co",
		IsActive: true,
	}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func Token(t *testing.T, cfg config.Config, userID string) string {
	t.Helper()
	tok, err := utils.GenerateJWT(cfg.JWTSecret, userID, cfg.JWTTTL)
	require.NoError(t, err)
	return tok
}

// DoJSON sends body (nil for none) as JSON with an optional bearer token.
func DoJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// DoUpload posts content as the multipart field "file", plus extra form fields.
func DoUpload(t *testing.T, r http.Handler, path, token, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals the recorder body into a generic map.
func Decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func init() {
	gin.SetMode(gin.TestMode)
}
