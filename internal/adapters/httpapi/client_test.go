package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) AccessToken(context.Context) string {
	return string(s)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(server.URL, staticTokens(token), WithHTTPClient(server.Client()))
}

func TestClientAttachesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth, gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = io.WriteString(w, `{"businessId":"biz-1","status":"suspended","paymentStatus":"unpaid"}`)
	}, "access-123")

	business, err := client.GetBusiness(context.Background(), "biz-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer access-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, domain.BusinessID("biz-1"), business.ID)
	assert.Equal(t, domain.PaymentStatusUnpaid, business.PaymentStatus)
}

func TestClientSendsUnauthenticatedRequestWithoutToken(t *testing.T) {
	t.Parallel()

	var hadAuth bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		_, _ = io.WriteString(w, `[]`)
	}, "")

	businesses, err := client.ListBusinesses(context.Background())
	require.NoError(t, err)

	assert.False(t, hadAuth)
	assert.Empty(t, businesses)
}

func TestClientErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "server message wins", status: http.StatusNotFound, body: `{"message":"Business not found"}`, wantMessage: "Business not found"},
		{name: "non json body falls back to status line", status: http.StatusInternalServerError, body: `<html>oops</html>`, wantMessage: "HTTP 500: Internal Server Error"},
		{name: "validation message list is joined", status: http.StatusBadRequest, body: `{"message":["companyName should not be empty","domainLabel must be lowercase"],"error":"Bad Request"}`, wantMessage: "companyName should not be empty, domainLabel must be lowercase"},
		{name: "empty message list falls back", status: http.StatusBadRequest, body: `{"message":[]}`, wantMessage: "HTTP 400: Bad Request"},
		{name: "json without message falls back", status: http.StatusBadRequest, body: `{"error":"bad"}`, wantMessage: "HTTP 400: Bad Request"},
		{name: "empty body", status: http.StatusForbidden, body: ``, wantMessage: "HTTP 403: Forbidden"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}, "token")

			_, err := client.GetBusiness(context.Background(), "biz-1")
			require.Error(t, err)

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tc.status, httpErr.StatusCode)
			assert.Equal(t, tc.wantMessage, httpErr.Message)
			assert.Equal(t, tc.wantMessage, err.Error())
		})
	}
}

func TestClientNotFoundHelper(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, "")

	_, err := client.GetBusiness(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClientReportsNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := New(baseURL, staticTokens(""))
	_, err := client.GetBusiness(context.Background(), "biz-1")
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.MethodGet, netErr.Method)

	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestClientHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetBusiness(ctx, "biz-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientRejectsUnexpectedShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing id", body: `{"status":"suspended","paymentStatus":"unpaid"}`},
		{name: "missing status", body: `{"businessId":"biz-1","paymentStatus":"unpaid"}`},
		{name: "missing payment status", body: `{"businessId":"biz-1","status":"suspended"}`},
		{name: "unknown status", body: `{"businessId":"biz-1","status":"pending","paymentStatus":"unpaid"}`},
		{name: "unknown payment status", body: `{"businessId":"biz-1","status":"suspended","paymentStatus":"overdue"}`},
		{name: "not json", body: `ok`},
		{name: "wrong type", body: `{"businessId":42,"status":"active"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, tc.body)
			}, "")

			_, err := client.GetBusiness(context.Background(), "biz-1")
			require.Error(t, err)

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, "business", schemaErr.Resource)
		})
	}
}

func TestClientDoesNotRetry(t *testing.T) {
	t.Parallel()

	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}, "")

	_, err := client.LaunchBusiness(context.Background(), "biz-1")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}
