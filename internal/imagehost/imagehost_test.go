package imagehost

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"buddyscript/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.Config{
		ImageHostURL:            serverURL,
		ImageHostAPIKey:         "test-key",
		ImageHostTimeoutSeconds: 5,
	})
}

func TestClient_Upload(t *testing.T) {
	content := []byte("fake image bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, r.ParseForm())

		decoded, err := base64.StdEncoding.DecodeString(r.PostFormValue("image"))
		require.NoError(t, err)
		assert.Equal(t, content, decoded)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"url":"https://i.ibb.co/abc/photo.jpg"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	url, err := client.Upload(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/abc/photo.jpg", url)
}

func TestClient_Upload_Errors(t *testing.T) {
	t.Run("empty content", func(t *testing.T) {
		client := newTestClient("http://localhost:0")
		_, err := client.Upload(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("upstream error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusBadRequest)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		_, err := client.Upload(context.Background(), []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 400")
	})

	t.Run("malformed response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		_, err := client.Upload(context.Background(), []byte("x"))
		assert.Error(t, err)
	})

	t.Run("missing url in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data":{}}`))
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		_, err := client.Upload(context.Background(), []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing url")
	})
}

func TestClient_Upload_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Upload(ctx, []byte("x"))
	assert.Error(t, err)
}
