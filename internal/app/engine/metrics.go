package engine

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	probeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scamshield_engine_probe_total",
		Help: "Engine availability probes by engine and outcome.",
	}, []string{"engine", "available"})

	transcriptionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scamshield_transcriptions_total",
		Help: "Transcription attempts by engine and status.",
	}, []string{"engine", "status"})

	transcriptionSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scamshield_transcription_duration_seconds",
		Help:    "Wall-clock transcription time by engine.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"engine"})
)

func observeProbe(engine string, available bool) {
	probeTotal.WithLabelValues(engine, strconv.FormatBool(available)).Inc()
}

func observeTranscription(engine, status string, elapsed time.Duration) {
	transcriptionTotal.WithLabelValues(engine, status).Inc()
	if status == "success" {
		transcriptionSeconds.WithLabelValues(engine).Observe(elapsed.Seconds())
	}
}
