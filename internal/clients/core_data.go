package clients

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

type eventClient struct {
	rest *restClient
}

var _ interfaces.EventClient = (*eventClient)(nil)

// Add posts the event to /event/{profile}/{device}/{source}.
func (c *eventClient) Add(ctx context.Context, req models.AddEventRequest) (models.BaseResponse, error) {
	var response models.BaseResponse
	path := pathOf(models.ApiEventRoute, req.Event.ProfileName, req.Event.DeviceName, req.Event.SourceName)
	err := c.rest.do(ctx, http.MethodPost, path, nil, req, &response)
	return response, err
}

func (c *eventClient) EventsByDeviceName(ctx context.Context, name string, offset, limit int) (models.MultiEventsResponse, error) {
	var response models.MultiEventsResponse
	path := pathOf(models.ApiEventRoute, "device", "name", name)
	err := c.rest.do(ctx, http.MethodGet, path, pageQuery(offset, limit), nil, &response)
	return response, err
}

type readingClient struct {
	rest *restClient
}

var _ interfaces.ReadingClient = (*readingClient)(nil)

func (c *readingClient) ReadingsByDeviceName(ctx context.Context, name string, offset, limit int) (models.MultiReadingsResponse, error) {
	var response models.MultiReadingsResponse
	path := pathOf(models.ApiReadingRoute, "device", "name", name)
	err := c.rest.do(ctx, http.MethodGet, path, pageQuery(offset, limit), nil, &response)
	return response, err
}

func pageQuery(offset, limit int) map[string]string {
	return map[string]string{
		"offset": strconv.Itoa(offset),
		"limit":  strconv.Itoa(limit),
	}
}
