package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errNoFile      = errors.New("no file uploaded")
	errFileTooBig  = errors.New("file too large")
	errUploadInput = errors.New("invalid upload")
)

type upload struct {
	Name     string
	Size     int64
	Mimetype string
	Content  []byte
}

// readUpload reads the multipart field "file" into memory, capped at maxBytes.
func readUpload(c *gin.Context, maxBytes int64) (*upload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, errNoFile
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return nil, errFileTooBig
	}
	if err != nil {
		return nil, errUploadInput
	}
	if fh.Size > maxBytes {
		return nil, errFileTooBig
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errUploadInput
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, errUploadInput
	}
	return &upload{
		Name:     fh.Filename,
		Size:     fh.Size,
		Mimetype: fh.Header.Get("Content-Type"),
		Content:  content,
	}, nil
}

func respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNoFile):
		respondError(c, http.StatusBadRequest, "No file uploaded (field 'file')")
	case errors.Is(err, errFileTooBig):
		respondError(c, http.StatusRequestEntityTooLarge, "File too large")
	default:
		respondError(c, http.StatusBadRequest, "Invalid upload")
	}
}
