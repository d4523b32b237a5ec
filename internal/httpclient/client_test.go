package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"userhub/internal/logging"
)

func newClient(t *testing.T, baseURL string) (*Client, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	c, err := New(baseURL, 2*time.Second, logging.FromZap(zap.New(core)))
	require.NoError(t, err)
	return c, logs
}

func asAPIError(t *testing.T, err error) *APIError {
	t.Helper()
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "expected *APIError, got %T", err)
	return apiErr
}

func TestDo_SuccessDecodesAndLogsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"name":"Ann"}`))
	}))
	defer srv.Close()

	c, logs := newClient(t, srv.URL)

	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, c.PostJSON(context.Background(), "/users", map[string]string{"name": "Ann"}, &out))
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "Ann", out.Name)

	assert.Equal(t, 1, logs.FilterMessage("Making POST request to /users").Len())
}

func TestDo_ServerErrorUsesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"User not found"}`))
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	err := c.GetJSON(context.Background(), "/users/5", nil)

	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "User not found", apiErr.Message)
}

func TestDo_ServerErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	err := c.DeleteJSON(context.Background(), "/users/1", nil)

	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "An error occurred", apiErr.Message)
}

func TestDo_NoResponseIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := newClient(t, url)
	err := c.GetJSON(context.Background(), "/users", nil)

	apiErr := asAPIError(t, err)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, NetworkErrorMessage, apiErr.Message)
	assert.NotNil(t, errors.Unwrap(apiErr))
}

func TestDo_ClientSideFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)

	t.Run("unencodable payload", func(t *testing.T) {
		err := c.PutJSON(context.Background(), "/users/1", make(chan int), nil)
		apiErr := asAPIError(t, err)
		assert.Equal(t, 0, apiErr.Status)
		assert.Contains(t, apiErr.Message, "marshal payload")
	})

	t.Run("undecodable response", func(t *testing.T) {
		var out map[string]any
		err := c.GetJSON(context.Background(), "/users", &out)
		apiErr := asAPIError(t, err)
		assert.Equal(t, 0, apiErr.Status)
		assert.Contains(t, apiErr.Message, "unmarshal body")
	})

	t.Run("invalid method", func(t *testing.T) {
		err := c.Do(context.Background(), "BAD METHOD", "/users", nil, nil)
		apiErr := asAPIError(t, err)
		assert.Equal(t, 0, apiErr.Status)
		assert.NotEmpty(t, apiErr.Message)
	})
}

func TestClientFailure_FallbackMessage(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", clientFailure(nil).Message)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "http 404: User not found", (&APIError{Status: 404, Message: "User not found"}).Error())
	assert.Equal(t, NetworkErrorMessage, networkFailure(errors.New("dial")).Error())
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New("localhost:3000/api", time.Second, logging.NewNop())
	require.Error(t, err)
}
