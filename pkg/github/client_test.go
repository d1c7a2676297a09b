package github

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentsServer(t *testing.T, files map[string]File) (*httptest.Server, *map[string]any) {
	var lastPut map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/repos/teacher/lesson-planner/contents/")

		switch r.Method {
		case http.MethodGet:
			file, ok := files["data/lesson-planner.json"]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{
				// The Contents API wraps base64 lines with newlines.
				"content": base64.StdEncoding.EncodeToString(file.Content) + "\n",
				"sha":     file.SHA,
			})
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&lastPut))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"content": map[string]string{"sha": "new-sha"}})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(server.Close)
	return server, &lastPut
}

func TestClientImpl_GetFile(t *testing.T) {
	t.Run("should decode content and return the revision marker", func(t *testing.T) {
		server, _ := contentsServer(t, map[string]File{
			"data/lesson-planner.json": {Content: []byte(`{"subjects":[]}`), SHA: "abc123"},
		})
		client := NewClientWithBaseURL("test-token", server.URL)

		file, err := client.GetFile(ctx, validLocation())

		require.NoError(t, err)
		assert.Equal(t, `{"subjects":[]}`, string(file.Content))
		assert.Equal(t, "abc123", file.SHA)
	})

	t.Run("should return ErrFileNotFound on 404", func(t *testing.T) {
		server, _ := contentsServer(t, map[string]File{})
		client := NewClientWithBaseURL("test-token", server.URL)

		_, err := client.GetFile(ctx, validLocation())

		assert.ErrorIs(t, err, ErrFileNotFound)
	})
}

func TestClientImpl_GetFileSHA(t *testing.T) {
	t.Run("should return an empty sha for a missing file without error", func(t *testing.T) {
		server, _ := contentsServer(t, map[string]File{})
		client := NewClientWithBaseURL("test-token", server.URL)

		sha, err := client.GetFileSHA(ctx, validLocation())

		assert.NoError(t, err)
		assert.Empty(t, sha)
	})
}

func TestClientImpl_PutFile(t *testing.T) {
	t.Run("should upsert base64 content with branch and prior sha", func(t *testing.T) {
		server, lastPut := contentsServer(t, map[string]File{})
		client := NewClientWithBaseURL("test-token", server.URL)

		err := client.PutFile(ctx, validLocation(), []byte(`{"lessons":[]}`), "abc123", "Update lesson planner data")

		require.NoError(t, err)
		put := *lastPut
		assert.Equal(t, "Update lesson planner data", put["message"])
		assert.Equal(t, "main", put["branch"])
		assert.Equal(t, "abc123", put["sha"])
		decoded, err := base64.StdEncoding.DecodeString(put["content"].(string))
		require.NoError(t, err)
		assert.Equal(t, `{"lessons":[]}`, string(decoded))
	})

	t.Run("should omit sha when creating a new file", func(t *testing.T) {
		server, lastPut := contentsServer(t, map[string]File{})
		client := NewClientWithBaseURL("test-token", server.URL)

		err := client.PutFile(ctx, validLocation(), []byte("{}"), "", "Update lesson planner data")

		require.NoError(t, err)
		_, hasSHA := (*lastPut)["sha"]
		assert.False(t, hasSHA)
	})
}
