package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJoinURL(t *testing.T) {
	cases := []struct {
		base string
		path string
	}{
		{"https://api.example.org", "/api/outbreaks/42"},
		{"https://api.example.org/", "/api/outbreaks/42"},
		{"https://api.example.org/", "api/outbreaks/42"},
		{"https://api.example.org", "api/outbreaks/42"},
		{"https://api.example.org//", "//api/outbreaks/42"},
	}
	for _, tc := range cases {
		u, err := JoinURL(tc.base, tc.path)
		require.NoError(t, err)
		require.Equal(t, "https://api.example.org/api/outbreaks/42", u.String(), "base=%q path=%q", tc.base, tc.path)
	}

	u, err := JoinURL("https://host.example/outbreakwatchapi/", "/api/facilities")
	require.NoError(t, err)
	require.Equal(t, "https://host.example/outbreakwatchapi/api/facilities", u.String())

	u, err = JoinURL("https://api.example.org/?tenant=1", "/api/outbreaks/42")
	require.NoError(t, err)
	require.Equal(t, "/api/outbreaks/42", u.Path)
	require.Equal(t, "tenant=1", u.RawQuery)

	u, err = JoinURL("https://api.example.org/v1?tenant=1#top", "api/casestats?outbreakId=3")
	require.NoError(t, err)
	require.Equal(t, "/v1/api/casestats", u.Path)
	require.Equal(t, "outbreakId=3&tenant=1", u.RawQuery)
	require.Empty(t, u.Fragment)
}

func TestClient_Request_BaseURLWithQuery(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/?tenant=1", WithAPIKey("k"), WithKeyPlacement(PlacementQuery))
	require.NoError(t, err)

	_, err = c.Request(context.Background(), http.MethodGet, "/api/outbreaks/42", nil)
	require.NoError(t, err)
	require.Equal(t, "/api/outbreaks/42", gotPath)
	require.Equal(t, "apikey=k&tenant=1", gotQuery)
}

func TestNew_NilHTTPClientKeepsDefault(t *testing.T) {
	c, err := New("https://api.example.org", WithHTTPClient(nil), WithTimeout(5*time.Second))
	require.NoError(t, err)
	require.NotNil(t, c.httpClient)
	require.Equal(t, 5*time.Second, c.httpClient.Timeout)
}

func TestWithTimeout_DoesNotMutateSuppliedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	c, err := New("https://api.example.org", WithHTTPClient(shared), WithTimeout(time.Second))
	require.NoError(t, err)
	require.Equal(t, time.Minute, shared.Timeout)
	require.Equal(t, time.Second, c.httpClient.Timeout)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, base := range []string{"", "api.example.org", "ftp://api.example.org", "https://", "https://api.example.org/#frag"} {
		_, err := New(base)
		require.Error(t, err, "base=%q", base)
	}
}

func TestClient_Request_HeadersAndHeaderKey(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outbreakId":42}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL+"/", WithAPIKey("secret"))
	require.NoError(t, err)

	raw, err := client.Request(context.Background(), http.MethodGet, "/api/outbreaks/42", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"outbreakId":42}`, string(raw))

	require.Equal(t, http.MethodGet, got.Method)
	require.Equal(t, "/api/outbreaks/42", got.URL.Path)
	require.Equal(t, "application/json", got.Header.Get("Accept"))
	require.Equal(t, "application/json", got.Header.Get("Content-Type"))
	require.Equal(t, "no-cache, no-store", got.Header.Get("Cache-Control"))
	require.Equal(t, "secret", got.Header.Get(APIKeyHeader))
	require.Empty(t, got.URL.Query().Get(APIKeyParam))
	require.NotEmpty(t, got.Header.Get(RequestIDHeader))
}

func TestClient_Request_QueryKey(t *testing.T) {
	var query url.Values
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		header = r.Header.Get(APIKeyHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL, WithAPIKey("secret"), WithKeyPlacement(PlacementQuery))
	require.NoError(t, err)

	raw, err := client.Request(context.Background(), http.MethodDelete, "api/outbreaks/1", nil)
	require.NoError(t, err)
	require.Nil(t, raw)
	require.Equal(t, "secret", query.Get(APIKeyParam))
	require.Empty(t, header)
}

func TestClient_Request_NoKey(t *testing.T) {
	var header string
	var hasParam bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get(APIKeyHeader)
		hasParam = r.URL.Query().Has(APIKeyParam)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/api/facilities", nil, &out))
	require.Empty(t, out)
	require.Empty(t, header)
	require.False(t, hasParam)
}

func TestClient_Request_SendsBody(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"facilityId":7,"name":"Maple Lodge"}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL)
	require.NoError(t, err)

	var out struct {
		ID   int64  `json:"facilityId"`
		Name string `json:"name"`
	}
	err = client.Do(context.Background(), http.MethodPost, "/api/facilities", map[string]string{"name": "Maple Lodge"}, &out)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Maple Lodge"}`, body)
	require.Equal(t, int64(7), out.ID)
}

func TestClient_Request_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL)
	require.NoError(t, err)

	out := map[string]any{"untouched": true}
	require.NoError(t, client.Do(context.Background(), http.MethodDelete, "/api/outbreaks/3", nil, &out))
	require.Equal(t, map[string]any{"untouched": true}, out)
}

func TestClient_Request_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "outbreak 9 not found", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL, WithAPIKey("secret"), WithKeyPlacement(PlacementQuery))
	require.NoError(t, err)

	_, err = client.Request(context.Background(), http.MethodGet, "/api/outbreaks/9", nil)
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	require.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	require.Equal(t, "outbreak 9 not found", reqErr.Message)
	require.NotContains(t, reqErr.URL, "secret")
	require.True(t, IsNotFound(err))
	require.Equal(t, "API request failed (404): outbreak 9 not found", err.Error())
}

func TestClient_Request_ErrorReasonPhrase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL)
	require.NoError(t, err)

	_, err = client.Request(context.Background(), http.MethodGet, "/api/casestats", nil)
	require.Equal(t, http.StatusServiceUnavailable, StatusCode(err))
	require.Contains(t, err.Error(), "Service Unavailable")
	require.False(t, IsNotFound(err))
}

func TestClient_Request_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL)
	require.NoError(t, err)

	_, err = client.Request(context.Background(), http.MethodGet, "/api/outbreaks", nil)
	require.Error(t, err)
	require.Zero(t, StatusCode(err))
}

func TestClient_Request_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	client, err := New(base, WithTimeout(2*time.Second))
	require.NoError(t, err)

	_, err = client.Request(context.Background(), http.MethodGet, "/api/outbreaks", nil)
	var urlErr *url.Error
	require.True(t, errors.As(err, &urlErr))
	require.Zero(t, StatusCode(err))
}

func TestClient_Request_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Request(ctx, http.MethodGet, "/api/outbreaks", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseKeyPlacement(t *testing.T) {
	p, err := ParseKeyPlacement("")
	require.NoError(t, err)
	require.Equal(t, PlacementHeader, p)

	p, err = ParseKeyPlacement("QUERY")
	require.NoError(t, err)
	require.Equal(t, PlacementQuery, p)

	_, err = ParseKeyPlacement("cookie")
	require.Error(t, err)
}
