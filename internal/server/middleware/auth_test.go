package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator maps literal tokens to session ids.
type testTokenValidator struct {
	validTokens map[string]string
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SessionIDGetter, error) {
	sessionID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(sessionID), nil
}

type testClaims string

func (c testClaims) GetSessionID() string {
	return string(c)
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	tokens := &testTokenValidator{validTokens: map[string]string{"tok-a": "sess-a", "tok-b": "sess-b"}}

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetSessionID(r)
		require.NoError(t, err)
		fmt.Fprint(w, id)
	})

	mux := http.NewServeMux()
	mux.Handle("GET /sessions/{id}", AuthMiddleware(tokens, "id")(echo))
	mux.Handle("GET /whoami", AuthMiddleware(tokens, "")(echo))
	return mux
}

func TestAuthMiddleware(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{"valid token", "/sessions/sess-a", "Bearer tok-a", http.StatusOK, "sess-a"},
		{"lowercase scheme", "/sessions/sess-a", "bearer tok-a", http.StatusOK, "sess-a"},
		{"no path check", "/whoami", "Bearer tok-b", http.StatusOK, "sess-b"},
		{"other session", "/sessions/sess-b", "Bearer tok-a", http.StatusForbidden, ""},
		{"missing header", "/sessions/sess-a", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "/sessions/sess-a", "Basic tok-a", http.StatusUnauthorized, ""},
		{"extra parts", "/sessions/sess-a", "Bearer tok-a extra", http.StatusUnauthorized, ""},
		{"unknown token", "/sessions/sess-a", "Bearer nope", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
			if tt.status == http.StatusUnauthorized {
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestGetSessionID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSessionID(req)
	assert.Error(t, err)

	req = req.WithContext(context.WithValue(req.Context(), SessionIDKey(), "sess-a"))
	id, err := GetSessionID(req)
	require.NoError(t, err)
	assert.Equal(t, "sess-a", id)
}
