// Package storage is the SDK's boundary to a content-addressed blob store.
// Capability handles that accept rich metadata (lazy mint, signature mint,
// delayed reveal) upload through it and token readers fetch through it; the
// storage protocol itself is opaque to the SDK.
package storage

import "context"

// Uploader persists a JSON-serializable value and returns its content URI.
type Uploader interface {
	Upload(ctx context.Context, v interface{}) (string, error)
}

// Downloader fetches a content URI and decodes it into out.
type Downloader interface {
	Fetch(ctx context.Context, uri string, out interface{}) error
}

// Store is the full upload/fetch boundary.
type Store interface {
	Uploader
	Downloader
}
