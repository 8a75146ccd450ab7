package transforms

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/util"
)

// HTTPSenderOptions configures an HTTP export.
type HTTPSenderOptions struct {
	// URL may contain {key} placeholders resolved from the context values.
	URL      string
	MimeType string

	PersistOnError bool
	// ContinueOnSendError passes the input data on when the send fails.
	ContinueOnSendError bool
	// ReturnInputData passes the input data on instead of the response body.
	ReturnInputData bool

	// HTTPHeaderName is set to the secret SecretValueKey of SecretName.
	HTTPHeaderName string
	SecretName     string
	SecretValueKey string
}

// HTTPSender posts or puts pipeline data to an HTTP endpoint.
type HTTPSender struct {
	options HTTPSenderOptions
	client  *utils.HTTPClient
	metrics exportMetrics
}

func NewHTTPSender(url, mimeType string, persistOnError bool) *HTTPSender {
	return NewHTTPSenderWithOptions(HTTPSenderOptions{
		URL:            url,
		MimeType:       mimeType,
		PersistOnError: persistOnError,
	})
}

// NewHTTPSenderWithSecretHeader adds the header httpHeaderName, its value
// read from the secret provider.
func NewHTTPSenderWithSecretHeader(url, mimeType string, persistOnError bool, httpHeaderName, secretName, secretValueKey string) *HTTPSender {
	return NewHTTPSenderWithOptions(HTTPSenderOptions{
		URL:            url,
		MimeType:       mimeType,
		PersistOnError: persistOnError,
		HTTPHeaderName: httpHeaderName,
		SecretName:     secretName,
		SecretValueKey: secretValueKey,
	})
}

func NewHTTPSenderWithOptions(options HTTPSenderOptions) *HTTPSender {
	if options.MimeType == "" {
		options.MimeType = models.ContentTypeJSON
	}

	return &HTTPSender{
		options: options,
		client:  utils.NewHTTPClient(),
		metrics: newExportMetrics(metrics.HttpExportErrorsName, metrics.HttpExportSizeName, "HTTP"),
	}
}

func (sender *HTTPSender) HTTPPost(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	return sender.send(ctx, data, http.MethodPost)
}

func (sender *HTTPSender) HTTPPut(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	return sender.send(ctx, data, http.MethodPut)
}

func (sender *HTTPSender) send(ctx interfaces.AppFunctionContext, data any, method string) (bool, any) {
	function := "HTTP" + method
	log := ctx.LoggingClient()

	if data == nil {
		return false, noDataError(function, ctx)
	}

	target, err := ctx.ApplyValues(sender.options.URL)
	if err != nil {
		return false, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), err)
	}
	if _, err = url.ParseRequestURI(target); err != nil {
		return false, fmt.Errorf("function %s in pipeline '%s': invalid url %q: %w", function, ctx.PipelineId(), target, err)
	}

	exportData, err := util.CoerceType(data)
	if err != nil {
		return false, err
	}

	sender.metrics.register(ctx, metrics.HttpExportErrorsName, metrics.HttpExportSizeName, sender.options.URL)

	req := sender.client.R().
		SetContext(ctx.Context()).
		SetHeader(models.ContentType, sender.options.MimeType).
		SetHeader(models.CorrelationHeader, ctx.CorrelationID()).
		SetBody(exportData)

	if sender.options.HTTPHeaderName != "" {
		value, err := sender.secretHeaderValue(ctx)
		if err != nil {
			return false, sender.failed(ctx, exportData, err)
		}
		req.SetHeader(sender.options.HTTPHeaderName, value)
	}

	resp, err := req.Execute(method, target)
	if err != nil {
		return sender.afterFailure(ctx, data, exportData, fmt.Errorf("%s %s: %w", method, target, err))
	}
	if resp.StatusCode() >= http.StatusMultipleChoices {
		return sender.afterFailure(ctx, data, exportData, fmt.Errorf("%w: %s %s: %s", ErrExportStatus, method, target, resp.Status()))
	}

	if sender.options.PersistOnError {
		ctx.TriggerRetryFailedData()
	}
	sender.metrics.size.Observe(float64(len(exportData)))

	log.Debug().
		Str("pipeline", ctx.PipelineId()).
		Str("url", target).
		Int("size", len(exportData)).
		Int("status", resp.StatusCode()).
		Msg("sent data to HTTP endpoint")

	if sender.options.ReturnInputData {
		return true, data
	}

	body := resp.Body()
	ctx.SetResponseData(body)
	return true, body
}

func (sender *HTTPSender) secretHeaderValue(ctx interfaces.AppFunctionContext) (string, error) {
	secrets := ctx.SecretProvider()
	if secrets == nil {
		return "", ErrSecretHeader
	}

	values, err := secrets.GetSecret(sender.options.SecretName, sender.options.SecretValueKey)
	if err != nil {
		return "", fmt.Errorf("%w %s/%s: %w", ErrSecretHeader, sender.options.SecretName, sender.options.SecretValueKey, err)
	}
	return values[sender.options.SecretValueKey], nil
}

func (sender *HTTPSender) afterFailure(ctx interfaces.AppFunctionContext, data any, exportData []byte, err error) (bool, any) {
	err = sender.failed(ctx, exportData, err)
	if sender.options.ContinueOnSendError {
		return true, data
	}
	return false, err
}

func (sender *HTTPSender) failed(ctx interfaces.AppFunctionContext, exportData []byte, err error) error {
	sender.metrics.errors.Inc()
	if sender.options.PersistOnError {
		ctx.SetRetryData(exportData)
	}

	err = fmt.Errorf("%w in pipeline '%s': %w", ErrExport, ctx.PipelineId(), err)
	ctx.LoggingClient().Err(err).Msg("HTTP export failed")
	return err
}
