package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayStoreUpload(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"uri": "ipfs://QmUploaded"})
	}))
	defer srv.Close()

	store := NewGatewayStore(srv.URL, "https://gateway.example/ipfs")
	uri, err := store.Upload(context.Background(), map[string]string{"name": "x"})
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmUploaded", uri)
	assert.Equal(t, map[string]string{"name": "x"}, gotBody)
}

func TestGatewayStoreUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too large", http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	store := NewGatewayStore(srv.URL, "https://gateway.example/ipfs")
	_, err := store.Upload(context.Background(), map[string]string{"name": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "413")
}

func TestGatewayStoreFetchRewritesIPFS(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"name": "fetched"})
	}))
	defer srv.Close()

	store := NewGatewayStore(srv.URL+"/upload", srv.URL+"/ipfs/")

	var out map[string]string
	require.NoError(t, store.Fetch(context.Background(), "ipfs://QmCid", &out))
	assert.Equal(t, "/ipfs/QmCid", gotPath)
	assert.Equal(t, "fetched", out["name"])
}

func TestGatewayStoreFetchPassesHTTPThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"name": "direct"})
	}))
	defer srv.Close()

	store := NewGatewayStore("http://unused.example", "http://unused.example/ipfs")

	var out map[string]string
	require.NoError(t, store.Fetch(context.Background(), srv.URL+"/meta.json", &out))
	assert.Equal(t, "direct", out["name"])
}
