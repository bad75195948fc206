// Package httploader provides an image loader fetching over HTTP.
package httploader

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"time"

	"github.com/disintegration/imaging"

	"github.com/user/promoreel/pkg/ports"
)

var (
	// ErrUpstream is returned when the fetch fails or the upstream answers
	// with a non-2xx status.
	ErrUpstream = errors.New("httploader: upstream fetch failed")

	// ErrDecode is returned when the response body is not decodable image
	// data.
	ErrDecode = errors.New("httploader: image decode failed")
)

// Loader implements ports.ImageLoader over net/http. When a proxy base URL
// is configured, requests are routed through it the way the browser canvas
// needed the image proxy to strip cross-origin restrictions.
type Loader struct {
	client    *http.Client
	proxyBase string
	maxWidth  int
	maxHeight int
}

// Option configures a Loader.
type Option func(*Loader)

// WithClient replaces the HTTP client.
func WithClient(client *http.Client) Option {
	return func(l *Loader) { l.client = client }
}

// WithProxy routes fetches through an image proxy endpoint.
func WithProxy(base string) Option {
	return func(l *Loader) { l.proxyBase = base }
}

// WithMaxBounds downscales decoded images to fit within the given bounds,
// preserving aspect ratio. Zero disables downscaling.
func WithMaxBounds(width, height int) Option {
	return func(l *Loader) {
		l.maxWidth = width
		l.maxHeight = height
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and decodes a remote image. One request, no retries.
func (l *Loader) Load(ctx context.Context, imageURL string) (image.Image, error) {
	target := imageURL
	if l.proxyBase != "" {
		target = l.proxyBase + "?url=" + url.QueryEscape(imageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: upstream %d", ErrUpstream, resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if l.maxWidth > 0 && l.maxHeight > 0 {
		bounds := img.Bounds()
		if bounds.Dx() > l.maxWidth || bounds.Dy() > l.maxHeight {
			img = imaging.Fit(img, l.maxWidth, l.maxHeight, imaging.Lanczos)
		}
	}

	return img, nil
}

// Ensure Loader implements ports.ImageLoader
var _ ports.ImageLoader = (*Loader)(nil)
