// Package uploader posts the finished report workbook to a file endpoint.
package uploader

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Options configures the upload client.
type Options struct {
	URL       string
	Token     string
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
}

// Result is the endpoint's answer to a successful upload.
type Result struct {
	StatusCode int
	Body       string
}

// Uploader sends report files as multipart/form-data.
type Uploader struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewUploader creates an Uploader. Server errors (5xx) and transport
// errors are retried.
func NewUploader(opts Options, logger *zap.Logger) *Uploader {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = time.Second
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(5*opts.RetryWait).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	if opts.Token != "" {
		client.SetAuthToken(opts.Token)
	}

	return &Uploader{
		httpClient: client,
		url:        opts.URL,
		logger:     logger,
	}
}

// Upload posts the file at path together with the batch id. The file is
// reopened on every attempt.
func (u *Uploader) Upload(ctx context.Context, path, batchID string) (*Result, error) {
	resp, err := u.httpClient.R().
		SetContext(ctx).
		SetFile("file", path).
		SetFormData(map[string]string{
			"batch_id": batchID,
			"filename": filepath.Base(path),
		}).
		Post(u.url)
	if err != nil {
		u.logger.Error("Report upload failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to upload %s: %w", path, err)
	}
	if resp.IsError() {
		u.logger.Error("Report upload rejected",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, fmt.Errorf("upload of %s rejected: %s", path, resp.Status())
	}

	u.logger.Info("Report uploaded",
		zap.String("path", path),
		zap.String("batch_id", batchID),
		zap.Int("status_code", resp.StatusCode()),
	)
	return &Result{StatusCode: resp.StatusCode(), Body: resp.String()}, nil
}
