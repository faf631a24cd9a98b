package handlers

import (
	"fmt"
	"mime/multipart"

	"github.com/vidora-app/vidora_backend/internal/dto"
)

// openUpload wraps a multipart file header as a MediaUpload. The returned
// close function must be deferred by the caller.
func openUpload(fh *multipart.FileHeader) (*dto.MediaUpload, func(), error) {
	file, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open uploaded file %s: %w", fh.Filename, err)
	}
	upload := &dto.MediaUpload{
		Reader:      file,
		Size:        fh.Size,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}
	return upload, func() { _ = file.Close() }, nil
}
