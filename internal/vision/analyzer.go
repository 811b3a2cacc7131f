package vision

import "context"

// TagThreshold is the confidence a tag must exceed to be considered relevant
const TagThreshold = 0.5

// Caption is a short natural-language description of an image
type Caption struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Tag is a single keyword describing image content
type Tag struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Metadata describes the image as seen by the service
type Metadata struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Result contains the analysis of one image
type Result struct {
	Caption      *Caption `json:"caption,omitempty"` // nil when the service returned no caption
	Tags         []Tag    `json:"tags"`
	ModelVersion string   `json:"model_version,omitempty"`
	Metadata     Metadata `json:"metadata"`
}

// Analyzer defines the interface for image analysis backends
type Analyzer interface {
	// Analyze sends one image to the backend and returns its caption and tags.
	// Any failure is returned as *Error.
	Analyze(ctx context.Context, image []byte, contentType string) (*Result, error)
}

// RelevantTags returns the tags with confidence strictly above TagThreshold,
// in the order received
func RelevantTags(tags []Tag) []Tag {
	relevant := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		if tag.Confidence > TagThreshold {
			relevant = append(relevant, tag)
		}
	}
	return relevant
}
