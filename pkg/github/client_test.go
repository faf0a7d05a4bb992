package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFetchClones(t *testing.T) {
	ctx := context.Background()

	t.Run("should fetch and decode the clones payload", func(t *testing.T) {
		// given a server speaking the traffic/clones schema
		var gotPath, gotAccept, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAccept = r.Header.Get("Accept")
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"count": 30,
				"uniques": 13,
				"clones": [
					{"timestamp": "2024-06-01T00:00:00Z", "count": 10, "uniques": 5},
					{"timestamp": "2024-06-02T00:00:00Z", "count": 20, "uniques": 8}
				]
			}`))
		}))
		defer server.Close()
		client := NewClientWithBaseURL(server.URL)

		// when
		payload, err := client.FetchClones(ctx, "per2jensen", "clonepulse", "secret-token")

		// then
		require.NoError(t, err)
		assert.Equal(t, "/repos/per2jensen/clonepulse/traffic/clones", gotPath)
		assert.Equal(t, "application/vnd.github+json", gotAccept)
		assert.Equal(t, "Bearer secret-token", gotAuth)
		assert.Equal(t, 30, payload.Count)
		assert.Equal(t, 13, payload.Uniques)
		assert.Len(t, payload.Clones, 2)
	})

	t.Run("should keep clone entries undecoded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"count": 1, "uniques": 1, "clones": [{"timestamp": "garbage", "count": "x"}]}`))
		}))
		defer server.Close()
		client := NewClientWithBaseURL(server.URL)

		payload, err := client.FetchClones(ctx, "per2jensen", "clonepulse", "secret-token")

		require.NoError(t, err)
		require.Len(t, payload.Clones, 1)
		assert.JSONEq(t, `{"timestamp": "garbage", "count": "x"}`, string(payload.Clones[0]))
	})

	t.Run("should fail on a non-OK status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()
		client := NewClientWithBaseURL(server.URL)

		_, err := client.FetchClones(ctx, "per2jensen", "clonepulse", "secret-token")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-OK status: 403")
	})

	t.Run("should fail on a malformed response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()
		client := NewClientWithBaseURL(server.URL)

		_, err := client.FetchClones(ctx, "per2jensen", "clonepulse", "secret-token")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode clone traffic response")
	})

	t.Run("should respect context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()
		client := NewClientWithBaseURL(server.URL)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := client.FetchClones(cancelled, "per2jensen", "clonepulse", "secret-token")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestValidateName(t *testing.T) {
	t.Run("should accept typical user and repo names", func(t *testing.T) {
		for _, name := range []string{"per2jensen", "clone-pulse", "clone_pulse", "clone.pulse", "a"} {
			assert.NoError(t, ValidateName(name, "GitHub repo"), name)
		}
	})

	t.Run("should reject names with path or shell characters", func(t *testing.T) {
		for _, name := range []string{"", "bad/repo", "bad repo", "bad;repo", "../etc"} {
			assert.Error(t, ValidateName(name, "GitHub repo"), name)
		}
	})

	t.Run("should reject names longer than 100 characters", func(t *testing.T) {
		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}

		err := ValidateName(string(long), "GitHub user")

		assert.Error(t, err)
	})

	t.Run("should name the rejected kind in the message", func(t *testing.T) {
		err := ValidateName("bad/name", "GitHub user")

		require.Error(t, err)
		assert.Equal(t, `invalid GitHub user: "bad/name"`, err.Error())
	})
}
