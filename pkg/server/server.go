// Package server exposes the HTTP API: an image proxy for cross-origin
// product photos, CSV catalog import, on-demand clip rendering and an
// ffmpeg transcode endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/user/promoreel/pkg/capture"
	"github.com/user/promoreel/pkg/catalog"
	"github.com/user/promoreel/pkg/media"
	"github.com/user/promoreel/pkg/ports"
)

const defaultMaxUploadBytes = 256 << 20

// Server handles the HTTP API.
type Server struct {
	router     chi.Router
	pipeline   *capture.Pipeline
	transcoder ports.Transcoder
	client     *http.Client
	logger     ports.Logger
	maxUpload  int64
}

// Option configures a Server.
type Option func(*Server)

// WithHTTPClient sets the client used for upstream image fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Server) {
		s.client = client
	}
}

// WithMaxUploadBytes limits the size of uploaded clips and catalogs.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		s.maxUpload = n
	}
}

// New creates a Server and registers its routes.
func New(pipeline *capture.Pipeline, transcoder ports.Transcoder, logger ports.Logger, opts ...Option) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		pipeline:   pipeline,
		transcoder: transcoder,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger.WithComponent("server"),
		maxUpload:  defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(countRequests)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Get("/api/image-proxy", s.handleImageProxy)
	s.router.Post("/api/import", s.handleImport)
	s.router.Post("/api/render", s.handleRender)
	s.router.Post("/api/transcode", s.handleTranscode)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Listening on %s", addr)
	err := srv.ListenAndServe()
	<-done
	s.logger.Info("Server stopped")
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		requestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleImageProxy fetches a remote product image server-side so the
// browser canvas stays untainted, and adds caching plus CORS headers.
func (s *Server) handleImageProxy(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		http.Error(w, "url missing", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		http.Error(w, "invalid url", http.StatusBadRequest)
		return
	}

	resp, err := s.client.Do(req)
	if err != nil {
		proxiedImages.WithLabelValues("error").Inc()
		s.logger.Error("Failed to load image: %s", err)
		http.Error(w, "image fetch failed", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		proxiedImages.WithLabelValues("upstream_error").Inc()
		http.Error(w, fmt.Sprintf("upstream %d", resp.StatusCode), http.StatusBadGateway)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if _, err := io.Copy(w, resp.Body); err != nil {
		proxiedImages.WithLabelValues("copy_error").Inc()
		return
	}
	proxiedImages.WithLabelValues("ok").Inc()
}

// handleImport parses an uploaded CSV catalog and returns the products
// as JSON. The file may arrive as a multipart field named "file" or as
// the raw request body.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var reader io.Reader

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(s.maxUpload); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file missing", http.StatusBadRequest)
			return
		}
		defer file.Close()
		reader = file
	} else {
		reader = http.MaxBytesReader(w, r.Body, s.maxUpload)
	}

	products, err := catalog.ImportCSV(reader)
	if err != nil {
		s.logger.Error("Failed to import catalog: %s", err)
		http.Error(w, "invalid csv", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(importResponse{
		Products: products,
		Count:    len(products),
	})
}

type importResponse struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

// handleRender records a clip for the posted product and streams it
// back. Only one recording runs at a time; a second request during a
// recording gets 409.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var product catalog.Product
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&product); err != nil {
		http.Error(w, "invalid product", http.StatusBadRequest)
		return
	}
	if product.ImageURL == "" {
		http.Error(w, "imageUrl missing", http.StatusBadRequest)
		return
	}

	clip, err := s.pipeline.Start(r.Context(), product)
	if err != nil {
		if errors.Is(err, capture.ErrBusy) {
			clipsRendered.WithLabelValues("busy").Inc()
			http.Error(w, "recording in progress", http.StatusConflict)
			return
		}
		clipsRendered.WithLabelValues("error").Inc()
		s.logger.Error("Failed to render product %s: %s", product.ID, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	clipsRendered.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", media.TypeMP4)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.mp4", product.ID))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(clip.Data)
}

// handleTranscode converts an uploaded clip to H.264 MP4 via ffmpeg and
// returns the result as a download.
func (s *Server) handleTranscode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read failed", http.StatusInternalServerError)
		return
	}

	start := time.Now()
	out, err := s.transcoder.Transcode(r.Context(), media.NewClip(media.TypeMP4, data))
	if err != nil {
		s.logger.Error("Failed to transcode: %s", err)
		http.Error(w, fmt.Sprintf("transcode failed: %s", err), http.StatusInternalServerError)
		return
	}
	observeTranscodeDuration(time.Since(start))

	w.Header().Set("Content-Type", media.TypeMP4)
	w.Header().Set("Content-Disposition", "attachment; filename=video.mp4")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(out.Data)
}
