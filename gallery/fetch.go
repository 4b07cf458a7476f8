package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedURI is returned when an image URI uses a scheme the fetcher cannot read.
var ErrUnsupportedURI = errors.New("unsupported image uri")

// DefaultMaxImageBytes caps how much of a single image the default fetcher will read.
const DefaultMaxImageBytes = 64 << 20

// Fetcher retrieves the encoded bytes of an image.
type Fetcher interface {
	// Fetch reads the image at uri. Implementations must honour ctx cancellation.
	//
	// Parameters:
	//   - ctx: cancelled when the gallery unmounts
	//   - uri: the image location
	//
	// Returns:
	//   - []byte: the encoded image bytes
	//   - error: error if the image cannot be read
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, uri string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, uri string) ([]byte, error) {
	return f(ctx, uri)
}

type uriFetcher struct {
	client   *http.Client
	baseDir  string
	maxBytes int64
}

var _ Fetcher = &uriFetcher{}

// NewFetcher creates a Fetcher that reads local paths, file:// URIs and http(s):// URLs.
// Relative paths resolve against baseDir.
//
// Parameters:
//   - client: the HTTP client to use; nil uses http.DefaultClient
//   - baseDir: directory relative paths resolve against; empty means the working directory
//
// Returns:
//   - Fetcher: the fetcher
func NewFetcher(client *http.Client, baseDir string) Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &uriFetcher{client: client, baseDir: baseDir, maxBytes: DefaultMaxImageBytes}
}

func (f *uriFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	// Windows drive letters parse as a one-letter scheme.
	if err != nil || len(u.Scheme) <= 1 {
		return f.readFile(ctx, uri)
	}
	switch strings.ToLower(u.Scheme) {
	case "file":
		p := u.Path
		if p == "" {
			p = u.Opaque
		}
		return f.readFile(ctx, p)
	case "http", "https":
		return f.get(ctx, u.String())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURI, uri)
	}
}

func (f *uriFetcher) readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) && f.baseDir != "" {
		path = filepath.Join(f.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()
	return readLimited(file, f.maxBytes)
}

func (f *uriFetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: %s", rawURL, resp.Status)
	}
	return readLimited(resp.Body, f.maxBytes)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image exceeds %d bytes", limit)
	}
	return data, nil
}
