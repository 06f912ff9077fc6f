package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoDecodesEnvelopedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		fmt.Fprint(w, `{"success":true,"data":{"id":5,"username":"jdoe"}}`)
	}))
	defer server.Close()

	var user User
	err := New(server.URL).Do(context.Background(), http.MethodGet, "/api/v1/users/5", nil, &user)
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, "jdoe", user.Username)
}

func TestDoDecodesBarePayload(t *testing.T) {
	// Health endpoints respond outside the data envelope
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok"}`)
	}))
	defer server.Close()

	var health struct {
		Status string `json:"status"`
	}
	err := New(server.URL).Do(context.Background(), http.MethodGet, "/health", nil, &health)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestDoSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer server.Close()

	client := New(server.URL)
	client.Tokens().SetToken("tok-123")

	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/api/v1/users/me", nil, nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDoClassifiesStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{http.StatusUnauthorized, ErrorTypeAuthentication},
		{http.StatusForbidden, ErrorTypeAuthorization},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusConflict, ErrorTypeConflict},
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusInternalServerError, ErrorTypeServer},
		{http.StatusBadGateway, ErrorTypeServer},
		{http.StatusBadRequest, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"success":false,"error":{"message":"it failed"}}`)
			}))
			defer server.Close()

			err := New(server.URL).Do(context.Background(), http.MethodGet, "/api/v1/x", nil, nil)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.want, apiErr.Type)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "it failed", apiErr.Message)
		})
	}
}

func TestDoFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "not json")
	}))
	defer server.Close()

	err := New(server.URL).Do(context.Background(), http.MethodGet, "/api/v1/x", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not Found", apiErr.Message)
}

func TestDoTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(server.URL, WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	err := client.Do(context.Background(), http.MethodGet, "/api/v1/x", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeTimeout, apiErr.Type)
}

func TestDoContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(server.URL).Do(ctx, http.MethodGet, "/api/v1/x", nil, nil)
	}()
	cancel()
	err := <-done

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeNetwork, apiErr.Type)
}

func TestDoNetworkFailure(t *testing.T) {
	// Nothing listens here
	err := New("http://127.0.0.1:1").Do(context.Background(), http.MethodGet, "/x", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeNetwork, apiErr.Type)
}

func TestSignInPersistsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jdoe@example.com", body["email"])

		fmt.Fprint(w, `{"data":{"user":{"id":1,"username":"jdoe"},"token":"tok-abc","expiresIn":86400}}`)
	}))
	defer server.Close()

	client := New(server.URL)
	result, err := client.SignIn(context.Background(), "jdoe@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", result.Token)
	assert.Equal(t, "tok-abc", client.Tokens().Token())

	client.SignOut()
	assert.Empty(t, client.Tokens().Token())
}

func TestSignInBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success":false,"error":{"message":"Invalid email or password"}}`)
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.SignIn(context.Background(), "jdoe@example.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeAuthentication, apiErr.Type)
	assert.Empty(t, client.Tokens().Token())
}

func TestMessagesAddsAfterParam(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	after := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	_, err := New(server.URL).Messages(context.Background(), 9, after)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "after=")

	_, err = New(server.URL).Messages(context.Background(), 9, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestAPIErrorString(t *testing.T) {
	withStatus := &APIError{Type: ErrorTypeNotFound, StatusCode: 404, Message: "gone"}
	assert.Equal(t, "NOT_FOUND_ERROR (404): gone", withStatus.Error())

	withoutStatus := &APIError{Type: ErrorTypeTimeout, Message: "request timed out"}
	assert.Equal(t, "TIMEOUT_ERROR: request timed out", withoutStatus.Error())

	assert.True(t, errors.As(error(withStatus), new(*APIError)))
}
