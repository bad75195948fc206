package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts API requests by route and status code.
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promoreel_http_requests_total",
		Help: "Total number of API requests by route and status code",
	}, []string{"route", "code"})

	// transcodeDuration tracks how long an ffmpeg transcode takes.
	transcodeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "promoreel_transcode_duration_seconds",
		Help:    "Time taken to transcode an uploaded clip",
		Buckets: []float64{0.5, 1, 2, 3, 5, 8, 13, 20, 30, 60},
	})

	// clipsRendered counts clips produced through the render endpoint.
	clipsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promoreel_clips_rendered_total",
		Help: "Total number of clips rendered by result",
	}, []string{"result"})

	// proxiedImages counts upstream image fetches by result.
	proxiedImages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promoreel_image_proxy_total",
		Help: "Total number of proxied image fetches by result",
	}, []string{"result"})
)

func observeTranscodeDuration(d time.Duration) {
	transcodeDuration.Observe(d.Seconds())
}
