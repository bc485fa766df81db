// Package client issues authenticated calls against the storefront's REST
// backend. Expired access credentials are refreshed silently, at most once
// per original request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shopease/storefront-client/internal/config"
	"github.com/shopease/storefront-client/internal/errors"
	"github.com/shopease/storefront-client/internal/metrics"
	"github.com/shopease/storefront-client/internal/models"
	"github.com/shopease/storefront-client/internal/storage"
)

const refreshPath = "/token/refresh/"

// refreshState makes the one-shot retry explicit: a request in
// stateRefreshed never triggers another refresh, whatever its status.
type refreshState int

const (
	stateNormal refreshState = iota
	stateRefreshed
)

type Gateway struct {
	baseURL    string
	httpClient *http.Client
	store      storage.Store
	logger     *slog.Logger
}

func NewGateway(cfg *config.APIConfig, store storage.Store, logger *slog.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		store:  store,
		logger: logger,
	}
}

func (g *Gateway) send(ctx context.Context, method, path string, body []byte, authenticated bool) (*http.Response, error) {

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, errors.InternalError("Failed to build request").WithError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authenticated {

		var accessToken string

		if _, err := g.store.Get(ctx, storage.KeyAccessToken, &accessToken); err != nil {
			g.logger.Warn("Failed to read access token", slog.String("error", err.Error()))
		}

		if accessToken != "" {
			req.Header.Set("Authorization", "Bearer "+accessToken)
		}
	}

	start := time.Now()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		metrics.ObserveAPIRequest(method, path, 0, time.Since(start))

		return nil, errors.NetworkError("Network request failed").WithError(err)
	}

	metrics.ObserveAPIRequest(method, path, resp.StatusCode, time.Since(start))

	return resp, nil
}

// Do issues an authenticated request. On a 401 it attempts exactly one
// silent refresh and retries; the retried response is returned whatever
// its status. Any other status is the caller's concern.
func (g *Gateway) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {

	var payload []byte

	if body != nil {

		var err error

		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errors.InternalError("Failed to encode request body").WithError(err)
		}
	}

	state := stateNormal

	for {

		resp, err := g.send(ctx, method, path, payload, true)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusUnauthorized || state == stateRefreshed {
			return resp, nil
		}

		resp.Body.Close()

		if err := g.refreshAccessToken(ctx); err != nil {
			return nil, err
		}

		state = stateRefreshed
	}
}

// refreshAccessToken exchanges the stored refresh credential for a new
// access credential and persists it. Any failure surfaces as an
// authentication failure and clears the stored credentials.
func (g *Gateway) refreshAccessToken(ctx context.Context) error {

	var refreshToken string

	found, err := g.store.Get(ctx, storage.KeyRefreshToken, &refreshToken)
	if err != nil || !found || refreshToken == "" {
		metrics.ObserveTokenRefresh("missing_credential")

		return g.authFailure(ctx, "Session expired, please login again")
	}

	payload, err := json.Marshal(models.RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return errors.InternalError("Failed to encode refresh request").WithError(err)
	}

	resp, err := g.send(ctx, http.MethodPost, refreshPath, payload, false)
	if err != nil {
		metrics.ObserveTokenRefresh("network_error")

		return g.authFailure(ctx, "Session expired, please login again")
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveTokenRefresh("rejected")
		g.logger.Warn("Token refresh rejected", slog.Int("status", resp.StatusCode))

		return g.authFailure(ctx, "Session expired, please login again")
	}

	var refreshed models.RefreshResponse

	if err := json.NewDecoder(resp.Body).Decode(&refreshed); err != nil || refreshed.Access == "" {
		metrics.ObserveTokenRefresh("bad_response")

		return g.authFailure(ctx, "Session expired, please login again")
	}

	if err := g.store.Set(ctx, storage.KeyAccessToken, refreshed.Access); err != nil {
		return errors.InternalError("Failed to persist refreshed token").WithError(err)
	}

	metrics.ObserveTokenRefresh("success")
	g.logger.Info("Access token refreshed")

	return nil
}

func (g *Gateway) authFailure(ctx context.Context, message string) error {

	// Expired credentials are useless; drop them so the next call starts anonymous.
	if err := g.store.Clear(ctx, storage.KeyAccessToken, storage.KeyRefreshToken); err != nil {
		g.logger.Warn("Failed to clear stored credentials", slog.String("error", err.Error()))
	}

	return errors.AuthenticationError(message)
}

// decode reads a response into dest, converting non-2xx statuses into a
// server error carrying the backend's message when one is present.
func (g *Gateway) decode(resp *http.Response, dest any) error {

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NetworkError("Failed to read response").WithError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.ServerError(errorMessage(data), resp.StatusCode)
	}

	if dest == nil {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return errors.ServerError("Unexpected response from server", resp.StatusCode).WithError(err)
	}

	return nil
}

// errorMessage extracts a usable message from a backend error body:
// {"error": ...}, {"detail": ...}, {"message": ...} or field-keyed
// validation errors like {"username": ["taken"]}.
func errorMessage(data []byte) string {

	var body map[string]any

	if err := json.Unmarshal(data, &body); err != nil || len(body) == 0 {
		return "Something went wrong, please try again"
	}

	for _, key := range []string{"error", "detail", "message"} {
		if msg, ok := body[key].(string); ok && msg != "" {
			return msg
		}
	}

	// field-keyed validation errors
	var parts []string

	for field, value := range body {
		switch v := value.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%s: %s", field, v))
		case []any:
			for _, item := range v {
				if msg, ok := item.(string); ok {
					parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
				}
			}
		}
	}

	if len(parts) == 0 {
		return "Something went wrong, please try again"
	}

	return strings.Join(parts, "; ")
}

func (g *Gateway) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {

	resp, err := g.send(ctx, http.MethodPost, "/users/login/", mustMarshal(req), false)
	if err != nil {
		return nil, err
	}

	var auth models.AuthResponse

	if err := g.decode(resp, &auth); err != nil {
		return nil, err
	}

	return &auth, nil
}

func (g *Gateway) Register(ctx context.Context, req *models.RegisterRequest) error {

	resp, err := g.send(ctx, http.MethodPost, "/users/register/", mustMarshal(req), false)
	if err != nil {
		return err
	}

	return g.decode(resp, nil)
}

func (g *Gateway) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Order, error) {

	resp, err := g.Do(ctx, http.MethodPost, "/orders/", req)
	if err != nil {
		return nil, err
	}

	var order models.Order

	if err := g.decode(resp, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (g *Gateway) OrderHistory(ctx context.Context) ([]models.Order, error) {

	resp, err := g.Do(ctx, http.MethodGet, "/orders/order_history/", nil)
	if err != nil {
		return nil, err
	}

	var orders []models.Order

	if err := g.decode(resp, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// request DTOs are plain structs; this cannot fail at runtime
		panic(err)
	}

	return data
}
