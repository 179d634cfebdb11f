package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shop-admin-service/internal/adapter/identity"
	"github.com/example/shop-admin-service/internal/domain"
)

func TestVerify_SignedIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"signed_in":true,"email":"admin@example.com"}`))
	}))
	defer srv.Close()

	state, err := identity.NewHTTPVerifier(srv.URL).Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityState{Loaded: true, SignedIn: true, Email: "admin@example.com"}, state)
}

func TestVerify_UnknownToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	state, err := identity.NewHTTPVerifier(srv.URL).Verify(context.Background(), "bad")
	require.NoError(t, err)
	assert.True(t, state.Loaded)
	assert.False(t, state.SignedIn)
}

func TestVerify_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	state, err := identity.NewHTTPVerifier(srv.URL).Verify(context.Background(), "tok")
	require.Error(t, err)
	assert.False(t, state.Loaded, "provider failure must read as still-loading, not as a refusal")
}
