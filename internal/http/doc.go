// Package http provides the HTTP client used to fetch the album catalog and
// cover art.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Non-200 responses as errors
//
// # Basic Usage
//
//	client := http.NewClient(http.WithTimeout(30 * time.Second))
//
//	// Fetch the catalog
//	data, err := client.Get(ctx, "https://www.russ.fm/index.json")
//
//	// Download cover art
//	img, err := client.DownloadBytes(ctx, coverURL)
package http
