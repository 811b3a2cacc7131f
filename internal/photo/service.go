package photo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/photo-analyzer/internal/vision"
)

// IDGenerator generates request IDs for analyses
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// uuidGenerator generates random UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service runs one capture through the analyzer and the renderer
type Service struct {
	analyzer    vision.Analyzer
	metrics     *Metrics
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with UUID request IDs and the wall clock
func NewService(analyzer vision.Analyzer, metrics *Metrics) *Service {
	return NewServiceWithDeps(analyzer, metrics, &uuidGenerator{}, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(analyzer vision.Analyzer, metrics *Metrics, idGen IDGenerator, timeSrc TimeSource) *Service {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Service{
		analyzer:    analyzer,
		metrics:     metrics,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// Metrics returns the metrics the service records into
func (s *Service) Metrics() *Metrics {
	return s.metrics
}

// Analyze renders the view for one interaction. The analyzer is only called
// when a photo is present, and its failure never escapes as an error: it is
// rendered into the view.
func (s *Service) Analyze(ctx context.Context, p Photo) View {
	if !p.Present() {
		s.metrics.observeIdle()
		return Render(p, nil, nil)
	}

	requestID := s.idGenerator.Generate()
	start := s.timeSource.Now()

	slog.Info("Analyzing photo",
		"request_id", requestID,
		"filename", p.Filename,
		"content_type", p.ContentType,
		"file_size", len(p.Data),
	)

	res, err := s.analyzer.Analyze(ctx, p.Data, p.ContentType)
	elapsed := s.timeSource.Now().Sub(start)

	view := Render(p, res, err)
	s.metrics.observeAnalysis(view.State, elapsed, err)

	if view.State == StateFailed {
		slog.Error("Failed to analyze photo",
			"request_id", requestID,
			"kind", failureKind(err),
			"duration", elapsed,
			"error", view.Error,
		)
		return view
	}

	slog.Info("Photo analyzed",
		"request_id", requestID,
		"duration", elapsed,
		"has_caption", view.Caption != "",
		"tags", len(view.Tags),
	)
	return view
}
