package gallery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetcherReadsFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewFetcher(nil, dir)
	ctx := context.Background()

	for _, uri := range []string{"a.png", filepath.Join(dir, "a.png"), "file://" + filepath.ToSlash(filepath.Join(dir, "a.png"))} {
		got, err := f.Fetch(ctx, uri)
		if err != nil {
			t.Errorf("Fetch(%q) error = %v", uri, err)
			continue
		}
		if string(got) != "abc" {
			t.Errorf("Fetch(%q) = %q, want %q", uri, got, "abc")
		}
	}
	if _, err := f.Fetch(ctx, "missing.png"); err == nil {
		t.Error("Fetch(missing) error = nil")
	}
}

func TestFetcherHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("pixels"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), "")
	got, err := f.Fetch(context.Background(), srv.URL+"/img.jpg")
	if err != nil || string(got) != "pixels" {
		t.Errorf("Fetch() = %q, %v", got, err)
	}
	if _, err := f.Fetch(context.Background(), srv.URL+"/gone"); err == nil {
		t.Error("Fetch(404) error = nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, srv.URL+"/img.jpg"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestFetcherUnsupportedScheme(t *testing.T) {
	_, err := NewFetcher(nil, "").Fetch(context.Background(), "ftp://example.com/a.png")
	if !errors.Is(err, ErrUnsupportedURI) {
		t.Errorf("Fetch(ftp) error = %v, want ErrUnsupportedURI", err)
	}
}

func TestReadLimited(t *testing.T) {
	f := &uriFetcher{client: http.DefaultClient, maxBytes: 4}
	dir := t.TempDir()
	p := filepath.Join(dir, "big")
	if err := os.WriteFile(p, []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Fetch(context.Background(), p); err == nil {
		t.Error("Fetch(oversized) error = nil")
	}
}
