package photo

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// FormField is the multipart field the capture form posts the photo in
const FormField = "photo"

// Photo is the image captured during one page interaction
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Present reports whether a photo was captured
func (p Photo) Present() bool {
	return len(p.Data) > 0
}

// FromRequest returns the photo posted with the request. A request without a
// photo yields an absent Photo and no error. The content is passed through as
// captured; nothing is decoded or validated.
func FromRequest(r *http.Request, maxMemory int64) (Photo, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return Photo{}, nil
		}
		return Photo{}, fmt.Errorf("parsing multipart form: %w", err)
	}

	f, header, err := r.FormFile(FormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return Photo{}, nil
		}
		return Photo{}, fmt.Errorf("getting photo from form: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Photo{}, fmt.Errorf("reading photo data: %w", err)
	}
	if len(data) == 0 {
		return Photo{}, nil
	}

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return Photo{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
