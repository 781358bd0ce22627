package vocabulary

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxDocumentSize bounds the download; the current release is around 5MB
const maxDocumentSize = 64 << 20

// Fetcher downloads the vocabulary document
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a fetcher with the given client
func NewFetcher(httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{httpClient: httpClient}
}

// Fetch downloads url and returns the body
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/ld+json, application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download vocabulary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download vocabulary: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	return data, nil
}
