package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"taskboard/internal/config"
	"taskboard/internal/logger"
)

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		msg  string
	}{
		{"missing endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}, "endpoint is required"},
		{"missing credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"}, "credentials are required"},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}, "bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg, logger.NewWithWriter(io.Discard, "error", nil))
			assert.Nil(t, s)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))

	notFound := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	assert.ErrorIs(t, translate(notFound), ErrObjectNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestDownloadParams(t *testing.T) {
	assert.Empty(t, downloadParams(""))

	p := downloadParams("report.pdf")
	assert.Equal(t, "attachment; filename=report.pdf", p.Get("response-content-disposition"))

	p = downloadParams("my notes.txt")
	assert.Equal(t, `attachment; filename="my notes.txt"`, p.Get("response-content-disposition"))

	p = downloadParams("résumé.pdf")
	assert.Equal(t, "attachment; filename*=utf-8''r%C3%A9sum%C3%A9.pdf", p.Get("response-content-disposition"))
}
