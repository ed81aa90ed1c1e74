package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGatewayTimeout = 30 * time.Second

// GatewayStore talks to an HTTP storage gateway: uploads POST JSON to the
// upload endpoint and read that endpoint's returned URI; fetches rewrite
// ipfs:// URIs onto the gateway's fetch prefix.
type GatewayStore struct {
	uploadURL string
	fetchBase string
	client    *http.Client
}

func NewGatewayStore(uploadURL, fetchBase string) *GatewayStore {
	return &GatewayStore{
		uploadURL: uploadURL,
		fetchBase: strings.TrimSuffix(fetchBase, "/"),
		client:    &http.Client{Timeout: defaultGatewayTimeout},
	}
}

func (g *GatewayStore) Upload(ctx context.Context, v interface{}) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode blob: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.uploadURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed: gateway returned %s", resp.Status)
	}

	var result struct {
		URI string `json:"uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("invalid gateway response: %w", err)
	}
	return result.URI, nil
}

func (g *GatewayStore) Fetch(ctx context.Context, uri string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.resolve(uri), nil)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch failed: gateway returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// resolve rewrites content URIs onto the gateway's fetch prefix.
func (g *GatewayStore) resolve(uri string) string {
	if cid, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		return g.fetchBase + "/" + cid
	}
	return uri
}

var _ Store = (*GatewayStore)(nil)
