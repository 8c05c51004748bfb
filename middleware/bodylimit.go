package middleware

import (
	"fmt"
	"io"
	"mime"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
)

// Common size constants for convenience
const (
	KB int64 = 1024
	MB       = 1024 * KB
	GB       = 1024 * MB
)

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// MaxSize is the maximum allowed size in bytes (default: 4MB)
	MaxSize int64

	// ContentTypeLimit sets different limits per media type,
	// e.g. {"application/json": 1 * MB, "multipart/form-data": 10 * MB}
	ContentTypeLimit map[string]int64

	// ErrorHandler answers requests whose declared Content-Length exceeds the limit
	ErrorHandler func(ctx handler.Context, contentLength int64, maxSize int64) handler.Response
}

// BodyLimit creates a body limit middleware with default configuration (4MB limit).
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

// BodyLimitWithSize creates a body limit middleware with a specified size limit.
func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig creates a body limit middleware with custom configuration.
// Requests that declare a larger Content-Length are rejected before the
// handler runs. Other bodies are wrapped so that reading past the limit fails
// with an error carrying status 413.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 * MB
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, contentLength int64, maxSize int64) handler.Response {
			return response.Error(bodyTooLarge(contentLength, maxSize))
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()

			maxSize := cfg.MaxSize
			if cfg.ContentTypeLimit != nil {
				if mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type")); err == nil {
					if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
						maxSize = limit
					}
				}
			}

			if req.ContentLength > maxSize {
				return cfg.ErrorHandler(ctx, req.ContentLength, maxSize)
			}

			if req.Body != nil {
				req.Body = &limitedReader{reader: req.Body, limit: maxSize}
			}

			return next(ctx)
		}
	}
}

func bodyTooLarge(size, limit int64) response.HTTPError {
	details := map[string]any{"limit": limit}
	message := fmt.Sprintf("request body too large, maximum allowed: %s", formatBytes(limit))
	if size > 0 {
		details["size"] = size
		message = fmt.Sprintf("request body too large: %s, maximum allowed: %s", formatBytes(size), formatBytes(limit))
	}
	return response.ErrRequestEntityTooLarge.WithMessage(message).WithDetails(details)
}

// limitedReader fails once more than limit bytes would be read.
type limitedReader struct {
	reader io.ReadCloser
	limit  int64
	read   int64
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	// allow reading one byte past the limit to tell "exactly limit" from "more"
	remaining := lr.limit - lr.read + 1
	if remaining <= 0 {
		return 0, bodyTooLarge(0, lr.limit)
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := lr.reader.Read(p)
	lr.read += int64(n)
	if lr.read > lr.limit {
		return n - int(lr.read-lr.limit), bodyTooLarge(0, lr.limit)
	}
	return n, err
}

func (lr *limitedReader) Close() error {
	return lr.reader.Close()
}

// formatBytes formats bytes into a human-readable string
func formatBytes(bytes int64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
