package clients

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// restClient sends EdgeX REST requests to one core service.
type restClient struct {
	client *utils.HTTPClient
	log    *logger.Logger
}

func newRestClient(baseURL string, timeout time.Duration, log *logger.Logger) (*restClient, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &restClient{client: utils.NewHTTPClientForService(normalized, timeout), log: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" || u.Port() == "0" {
		return "", fmt.Errorf("address must include scheme, host and port: %s", raw)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// do sends the request and decodes a 2xx response into out.
func (c *restClient) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	req := c.client.R().
		SetContext(ctx).
		SetHeader(models.Accept, models.ContentTypeJSON)

	if correlationID := utils.CorrelationIDFromContext(ctx); correlationID != "" {
		req.SetHeader(models.CorrelationHeader, correlationID)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetHeader(models.ContentType, models.ContentTypeJSON).SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequest, method, path, err)
	}

	c.log.WithCorrelationID(utils.CorrelationIDFromContext(ctx)).Trace().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Msg("service request completed")

	return mapHTTPError(resp)
}

// pathOf escapes every segment and joins them under base.
func pathOf(base string, segments ...string) string {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, base)
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}
	return strings.Join(escaped, "/")
}
