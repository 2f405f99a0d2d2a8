package social

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublish_Success(t *testing.T) {
	var gotAuth string
	var gotBody postRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(postResponse{ID: "post-1"})
	}))
	defer srv.Close()

	client := NewClientWith(srv.URL, "test-key", srv.Client())

	err := client.Publish("New Article: Hello World", "https://example.com/articles/hello-world")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "New Article: Hello World", gotBody.Text)
	assert.Equal(t, "https://example.com/articles/hello-world", gotBody.Link)
}

func TestPublish_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClientWith(srv.URL, "test-key", srv.Client())

	err := client.Publish("text", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestPublish_RejectedPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(postResponse{Errors: []string{"duplicate status"}})
	}))
	defer srv.Close()

	client := NewClientWith(srv.URL, "test-key", srv.Client())

	err := client.Publish("text", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate status")
}

func TestPublish_NotConfigured(t *testing.T) {
	client := NewClientWith("", "", nil)

	err := client.Publish("text", "")
	assert.Error(t, err)
	assert.False(t, client.Configured())
}

func TestPublish_EmptyText(t *testing.T) {
	client := NewClientWith("http://localhost:1", "key", nil)

	err := client.Publish("", "")
	assert.Error(t, err)
}
