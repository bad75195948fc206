package httploader

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
)

func pngImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	payload := pngImage(t, 320, 240)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	loader := New()
	img, err := loader.Load(context.Background(), srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Errorf("expected 320x240, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestLoad_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	loader := New()
	_, err := loader.Load(context.Background(), srv.URL+"/a.png")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestLoad_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	loader := New()
	_, err := loader.Load(context.Background(), srv.URL+"/a.png")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestLoad_ThroughProxy(t *testing.T) {
	payload := pngImage(t, 16, 16)
	var gotQuery string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer proxy.Close()

	loader := New(WithProxy(proxy.URL + "/api/image-proxy"))
	if _, err := loader.Load(context.Background(), "https://example.com/photo.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "https://example.com/photo.jpg" {
		t.Errorf("proxy received wrong url: %q", gotQuery)
	}
}

func TestLoad_DownscalesToBounds(t *testing.T) {
	payload := pngImage(t, 400, 200)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	loader := New(WithMaxBounds(100, 100))
	img, err := loader.Load(context.Background(), srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("expected 100x50, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestLoad_SmallImageKeepsSize(t *testing.T) {
	payload := pngImage(t, 50, 40)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	loader := New(WithMaxBounds(100, 100))
	img, err := loader.Load(context.Background(), srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 40 {
		t.Errorf("expected 50x40, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}
