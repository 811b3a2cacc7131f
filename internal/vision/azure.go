package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zombor/photo-analyzer/internal/secrets"
)

const (
	azureAnalyzePath = "/computervision/imageanalysis:analyze"
	azureAPIVersion  = "2024-02-01"
	azureFeatures    = "caption,tags"
	azureKeyHeader   = "Ocp-Apim-Subscription-Key"

	// DefaultTimeout bounds one analysis request when no timeout is given
	DefaultTimeout = 30 * time.Second
)

// Azure implements the Analyzer interface using Azure AI Vision Image Analysis
type Azure struct {
	endpoint string
	key      string
	client   *http.Client
}

// AzureOption customizes an Azure analyzer
type AzureOption func(*Azure)

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) AzureOption {
	return func(a *Azure) {
		if timeout > 0 {
			a.client.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) AzureOption {
	return func(a *Azure) {
		if client != nil {
			a.client = client
		}
	}
}

// NewAzure creates an Azure analyzer authenticated with the given credentials
func NewAzure(creds secrets.Credentials, opts ...AzureOption) (*Azure, error) {
	if creds.Endpoint == "" {
		return nil, fmt.Errorf("azure endpoint is required")
	}
	if creds.Key == "" {
		return nil, fmt.Errorf("azure key is required")
	}
	if _, err := url.ParseRequestURI(creds.Endpoint); err != nil {
		return nil, fmt.Errorf("parsing azure endpoint: %w", err)
	}

	a := &Azure{
		endpoint: strings.TrimRight(creds.Endpoint, "/"),
		key:      creds.Key,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// azureAnalyzeResponse represents the response body of the analyze API
type azureAnalyzeResponse struct {
	ModelVersion  string `json:"modelVersion"`
	CaptionResult *struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"captionResult"`
	TagsResult *struct {
		Values []struct {
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
		} `json:"values"`
	} `json:"tagsResult"`
	Metadata struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"metadata"`
}

// azureErrorResponse represents an error body returned by the service
type azureErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// URL returns the analyze URL requested by this analyzer
func (a *Azure) URL() string {
	q := url.Values{}
	q.Set("api-version", azureAPIVersion)
	q.Set("features", azureFeatures)
	return a.endpoint + azureAnalyzePath + "?" + q.Encode()
}

// Analyze sends the image to Azure and returns its caption and tags
func (a *Azure) Analyze(ctx context.Context, image []byte, contentType string) (*Result, error) {
	if len(image) == 0 {
		return nil, newError(KindInvalid, nil, "image is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.URL(), bytes.NewReader(image))
	if err != nil {
		return nil, newError(KindInvalid, err, "creating request")
	}
	// The service sniffs the format itself; the capture content type is not forwarded.
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set(azureKeyHeader, a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, newError(KindNetwork, err, "calling azure vision API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindNetwork, err, "reading azure vision response")
	}

	if resp.StatusCode != http.StatusOK {
		kind := KindService
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = KindAuth
		}
		return nil, newError(kind, nil, "azure vision API error (status %d): %s", resp.StatusCode, describeErrorBody(body))
	}

	var analyzed azureAnalyzeResponse
	if err := json.Unmarshal(body, &analyzed); err != nil {
		return nil, newError(KindMalformed, err, "decoding azure vision response")
	}

	return analyzed.toResult(), nil
}

func (r *azureAnalyzeResponse) toResult() *Result {
	result := &Result{
		Tags:         []Tag{},
		ModelVersion: r.ModelVersion,
		Metadata: Metadata{
			Width:  r.Metadata.Width,
			Height: r.Metadata.Height,
		},
	}
	if r.CaptionResult != nil && r.CaptionResult.Text != "" {
		result.Caption = &Caption{
			Text:       r.CaptionResult.Text,
			Confidence: r.CaptionResult.Confidence,
		}
	}
	if r.TagsResult != nil {
		for _, v := range r.TagsResult.Values {
			result.Tags = append(result.Tags, Tag{Name: v.Name, Confidence: v.Confidence})
		}
	}
	return result
}

// describeErrorBody extracts "code: message" from an Azure error body,
// falling back to the raw body
func describeErrorBody(body []byte) string {
	var errResp azureErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		if errResp.Error.Code != "" {
			return errResp.Error.Code + ": " + errResp.Error.Message
		}
		return errResp.Error.Message
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty response body"
	}
	return text
}

