package syncclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Pull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/", r.URL.Path)
		w.Write([]byte("Activity,Start,End\n"))
	}))
	defer srv.Close()

	client := New(srv.URL, "s3cret")
	data, err := client.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Activity,Start,End\n", data)
}

func TestClient_PullEmptyPeer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, "s3cret")
	data, err := client.Pull(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestClient_Push(t *testing.T) {
	var got struct {
		Password string `json:"password"`
		Data     string `json:"data"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sync", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("synced"))
	}))
	defer srv.Close()

	client := New(srv.URL, "s3cret")
	err := client.Push(context.Background(), "Activity,Start,End\n")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got.Password)
	assert.Equal(t, "Activity,Start,End\n", got.Data)
}

func TestClient_Retrieve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/retrieve", r.URL.Path)
		w.Write([]byte("Activity,Start,End\n"))
	}))
	defer srv.Close()

	client := New(srv.URL, "s3cret")
	data, err := client.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Activity,Start,End\n", data)
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(srv.URL, "wrong")

	err := client.Push(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = client.Retrieve(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, "s3cret")
	err := client.Push(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "500")
}
