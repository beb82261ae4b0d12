package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

// HTTPResolver resolves categories through a remote taxonomy service,
// fronted by a file cache so each raw category is fetched at most once.
type HTTPResolver struct {
	config    HTTPConfig
	fileCache *FileCache
}

// HTTPConfig holds remote taxonomy service settings.
type HTTPConfig struct {
	Host          string
	Key           string
	RetryAttempts uint
}

// resolveResponse is the remote service's answer for one raw category.
type resolveResponse struct {
	CategoryID string `json:"category_id"`
	Resolved   bool   `json:"resolved"`
}

// NewHTTPResolver creates an HTTPResolver caching responses under cacheDirectory.
func NewHTTPResolver(cacheDirectory string, config HTTPConfig) *HTTPResolver {
	if config.RetryAttempts == 0 {
		config.RetryAttempts = 2
	}
	return &HTTPResolver{
		config:    config,
		fileCache: NewFileCache(cacheDirectory),
	}
}

func (r *HTTPResolver) lookupAPI(ctx context.Context, rawCategory string) ([]byte, error) {
	config := r.config

	var body []byte
	err := retry.Do(
		func() error {
			client := resty.New()
			res, err := client.R().
				SetContext(ctx).
				SetHeader("x-api-key", config.Key).
				Get(
					fmt.Sprintf("https://%s/categories/resolve/%s", config.Host, rawCategory),
				)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(fmt.Errorf("client.R.Get > %w", err))
				}
				return fmt.Errorf("client.R.Get > %w", err)
			}
			if res.StatusCode() >= http.StatusInternalServerError || res.StatusCode() == http.StatusTooManyRequests {
				return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
			}
			if res.StatusCode() != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body())))
			}
			body = res.Body()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(config.RetryAttempts+1),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// isRetryableError reports whether a transport error is worth retrying.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "EOF")
}

// Resolve returns the canonical category id for a raw category string.
// Returns ErrUnresolved when the service reports no match.
func (r *HTTPResolver) Resolve(ctx context.Context, rawCategory string) (string, error) {
	if rawCategory == "" {
		return "", ErrUnresolved
	}

	contents, err := r.fileCache.cache(rawCategory, func() ([]byte, error) {
		body, err := r.lookupAPI(ctx, rawCategory)
		if err != nil {
			return nil, fmt.Errorf("r.lookupAPI > %w", err)
		}
		return body, nil
	})
	if err != nil {
		return "", fmt.Errorf("r.fileCache.cache > %w", err)
	}

	var resp resolveResponse
	if err := json.Unmarshal(contents, &resp); err != nil {
		return "", fmt.Errorf("json.Unmarshal > %w", err)
	}
	if !resp.Resolved || resp.CategoryID == "" {
		return "", ErrUnresolved
	}
	return resp.CategoryID, nil
}
