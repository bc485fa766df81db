package client_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopease/storefront-client/internal/client"
	"github.com/shopease/storefront-client/internal/config"
	apperrors "github.com/shopease/storefront-client/internal/errors"
	"github.com/shopease/storefront-client/internal/models"
	"github.com/shopease/storefront-client/internal/storage"
)

type backendCounts struct {
	protected int
	refresh   int
}

// fakeBackend serves a protected endpoint that only accepts goodToken, and
// a refresh endpoint that exchanges goodRefresh for goodToken.
func fakeBackend(t *testing.T, counts *backendCounts, goodToken, goodRefresh string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/protected/", func(w http.ResponseWriter, r *http.Request) {
		counts.protected++

		if r.Header.Get("Authorization") != "Bearer "+goodToken {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok": true}`)
	})

	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		counts.refresh++

		var req models.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Refresh != goodRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"detail": "Token is invalid or expired"}`)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.RefreshResponse{Access: goodToken})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func newGateway(t *testing.T, baseURL string) (*client.Gateway, storage.Store) {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway := client.NewGateway(&config.APIConfig{BaseURL: baseURL}, store, logger)

	return gateway, store
}

func TestDo_AuthorizedRequestPassesThrough(t *testing.T) {
	// Arrange
	counts := &backendCounts{}
	server := fakeBackend(t, counts, "valid-access", "valid-refresh")
	gateway, store := newGateway(t, server.URL)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, storage.KeyAccessToken, "valid-access"))

	// Act
	resp, err := gateway.Do(ctx, http.MethodGet, "/protected/", nil)

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, counts.protected)
	assert.Equal(t, 0, counts.refresh)
}

func TestDo_UnauthorizedTriggersExactlyOneRefreshAndRetry(t *testing.T) {
	// Arrange
	counts := &backendCounts{}
	server := fakeBackend(t, counts, "new-access", "valid-refresh")
	gateway, store := newGateway(t, server.URL)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, storage.KeyAccessToken, "expired-access"))
	require.NoError(t, store.Set(ctx, storage.KeyRefreshToken, "valid-refresh"))

	// Act
	resp, err := gateway.Do(ctx, http.MethodGet, "/protected/", nil)

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, counts.protected, "original call plus exactly one retry")
	assert.Equal(t, 1, counts.refresh, "exactly one silent refresh")

	var storedAccess string
	found, err := store.Get(ctx, storage.KeyAccessToken, &storedAccess)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new-access", storedAccess, "refreshed token must be persisted")
}

func TestDo_UnauthorizedWithoutRefreshCredentialFailsImmediately(t *testing.T) {
	// Arrange
	counts := &backendCounts{}
	server := fakeBackend(t, counts, "valid-access", "valid-refresh")
	gateway, store := newGateway(t, server.URL)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, storage.KeyAccessToken, "expired-access"))

	// Act
	resp, err := gateway.Do(ctx, http.MethodGet, "/protected/", nil)

	// Assert
	require.Error(t, err)
	assert.Nil(t, resp)

	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAuthentication, appErr.Code)
	assert.Equal(t, 1, counts.protected, "no retry without a refresh credential")
	assert.Equal(t, 0, counts.refresh)
}

func TestDo_RejectedRefreshClearsStoredCredentials(t *testing.T) {
	// Arrange
	counts := &backendCounts{}
	server := fakeBackend(t, counts, "valid-access", "valid-refresh")
	gateway, store := newGateway(t, server.URL)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, storage.KeyAccessToken, "expired-access"))
	require.NoError(t, store.Set(ctx, storage.KeyRefreshToken, "stale-refresh"))

	// Act
	_, err := gateway.Do(ctx, http.MethodGet, "/protected/", nil)

	// Assert
	require.Error(t, err)

	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAuthentication, appErr.Code)
	assert.Equal(t, 1, counts.refresh)

	var leftover string

	found, getErr := store.Get(ctx, storage.KeyAccessToken, &leftover)
	require.NoError(t, getErr)
	assert.False(t, found, "access credential must be cleared")

	found, getErr = store.Get(ctx, storage.KeyRefreshToken, &leftover)
	require.NoError(t, getErr)
	assert.False(t, found, "refresh credential must be cleared")
}

func TestDo_RetryResponseIsReturnedWhateverItsStatus(t *testing.T) {
	// Arrange: refresh succeeds but the retried call is still unauthorized
	counts := &backendCounts{}

	mux := http.NewServeMux()
	mux.HandleFunc("/protected/", func(w http.ResponseWriter, r *http.Request) {
		counts.protected++
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		counts.refresh++
		json.NewEncoder(w).Encode(models.RefreshResponse{Access: "still-rejected"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	gateway, store := newGateway(t, server.URL)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, storage.KeyAccessToken, "expired-access"))
	require.NoError(t, store.Set(ctx, storage.KeyRefreshToken, "valid-refresh"))

	// Act
	resp, err := gateway.Do(ctx, http.MethodGet, "/protected/", nil)

	// Assert: no retry loop
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 2, counts.protected)
	assert.Equal(t, 1, counts.refresh)
}

func TestDo_TransportFailureIsANetworkError(t *testing.T) {
	// Arrange: a server that is already gone
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	gateway, _ := newGateway(t, server.URL)

	// Act
	resp, err := gateway.Do(context.Background(), http.MethodGet, "/protected/", nil)

	// Assert
	require.Error(t, err)
	assert.Nil(t, resp)

	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNetwork, appErr.Code)
}

func TestLogin(t *testing.T) {

	t.Run("Success - Decodes User And Tokens", func(t *testing.T) {
		// Arrange
		mux := http.NewServeMux()
		mux.HandleFunc("/users/login/", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			var req models.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice", req.Username)

			json.NewEncoder(w).Encode(models.AuthResponse{
				User:   &models.User{ID: 7, Username: "alice"},
				Tokens: models.TokenPair{Access: "acc", Refresh: "ref"},
			})
		})

		server := httptest.NewServer(mux)
		t.Cleanup(server.Close)

		gateway, _ := newGateway(t, server.URL)

		// Act
		auth, err := gateway.Login(context.Background(), &models.LoginRequest{Username: "alice", Password: "secret"})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, auth.User)
		assert.Equal(t, int64(7), auth.User.ID)
		assert.Equal(t, "acc", auth.Tokens.Access)
	})

	t.Run("Failure - Server Message Is Surfaced", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error": "Invalid credentials"}`)
		}))
		t.Cleanup(server.Close)

		gateway, _ := newGateway(t, server.URL)

		// Act
		auth, err := gateway.Login(context.Background(), &models.LoginRequest{Username: "alice", Password: "wrong"})

		// Assert
		require.Error(t, err)
		assert.Nil(t, auth)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeServer, appErr.Code)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	})
}

func TestRegister_FieldErrorsAreSurfaced(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"username": ["A user with that username already exists."]}`)
	}))
	t.Cleanup(server.Close)

	gateway, _ := newGateway(t, server.URL)

	// Act
	err := gateway.Register(context.Background(), &models.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "password123",
		Password2: "password123",
		FirstName: "Alice",
		LastName:  "Smith",
	})

	// Assert
	require.Error(t, err)

	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeServer, appErr.Code)
	assert.Contains(t, appErr.Message, "username: A user with that username already exists.")
}

func TestOrderHistory(t *testing.T) {
	// Arrange
	counts := &backendCounts{}

	mux := http.NewServeMux()
	mux.HandleFunc("/orders/order_history/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		counts.protected++
		json.NewEncoder(w).Encode([]models.Order{
			{ID: 1, OrderNumber: "ORD-0001", Status: models.OrderStatusConfirmed},
			{ID: 2, OrderNumber: "ORD-0002", Status: models.OrderStatusDelivered},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	gateway, store := newGateway(t, server.URL)
	require.NoError(t, store.Set(context.Background(), storage.KeyAccessToken, "valid-access"))

	// Act
	orders, err := gateway.OrderHistory(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-0001", orders[0].OrderNumber)
	assert.Equal(t, 1, counts.protected)
}
