package clients

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

const (
	pushEventParam   = "ds-pushevent"
	returnEventParam = "ds-returnevent"
)

type commandClient struct {
	rest *restClient
}

var _ interfaces.CommandClient = (*commandClient)(nil)

// IssueGetCommandByName returns nil when dsReturnEvent is false, since the
// device service then answers without an event.
func (c *commandClient) IssueGetCommandByName(ctx context.Context, deviceName, commandName string,
	dsPushEvent, dsReturnEvent bool) (*models.EventResponse, error) {
	query := map[string]string{
		pushEventParam:   strconv.FormatBool(dsPushEvent),
		returnEventParam: strconv.FormatBool(dsReturnEvent),
	}

	var response models.EventResponse
	path := pathOf(models.ApiDeviceByNameRoute, deviceName, commandName)
	if err := c.rest.do(ctx, http.MethodGet, path, query, nil, &response); err != nil {
		return nil, err
	}

	if !dsReturnEvent {
		return nil, nil
	}
	return &response, nil
}

func (c *commandClient) IssueSetCommandByName(ctx context.Context, deviceName, commandName string,
	settings map[string]any) (models.BaseResponse, error) {
	var response models.BaseResponse
	path := pathOf(models.ApiDeviceByNameRoute, deviceName, commandName)
	err := c.rest.do(ctx, http.MethodPut, path, nil, settings, &response)
	return response, err
}
