package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientFetchJSONSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Andy Weir"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(Config{Timeout: time.Second})
	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, client.FetchJSON(context.Background(), srv.URL, &out))
	require.Equal(t, "Andy Weir", out.Name)
}

func TestClientFetchJSONNon200IsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{Timeout: time.Second})
	var out map[string]any
	require.Error(t, client.FetchJSON(context.Background(), srv.URL, &out))
}

func TestClientFetchJSONMalformedBodyIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"name":`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(Config{Timeout: time.Second})
	var out map[string]any
	require.Error(t, client.FetchJSON(context.Background(), srv.URL, &out))
}

func TestClientFetchJSONFollowsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/target", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok":true}`)) //nolint:errcheck
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/target", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(Config{Timeout: time.Second})
	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, client.FetchJSON(context.Background(), srv.URL, &out))
	require.True(t, out.OK)
}

func TestClientFetchJSONTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(Config{Timeout: 100 * time.Millisecond})
	var out map[string]any
	start := time.Now()
	require.Error(t, client.FetchJSON(context.Background(), srv.URL, &out))
	require.Less(t, time.Since(start), 5*time.Second)
}
