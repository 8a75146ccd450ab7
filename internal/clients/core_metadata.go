package clients

import (
	"context"
	"net/http"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

type deviceClient struct {
	rest *restClient
}

var _ interfaces.DeviceClient = (*deviceClient)(nil)

func (c *deviceClient) DeviceByName(ctx context.Context, name string) (models.DeviceResponse, error) {
	var response models.DeviceResponse
	err := c.rest.do(ctx, http.MethodGet, pathOf(models.ApiDeviceByNameRoute, name), nil, nil, &response)
	return response, err
}

type deviceProfileClient struct {
	rest *restClient
}

var _ interfaces.DeviceProfileClient = (*deviceProfileClient)(nil)

func (c *deviceProfileClient) DeviceResourceByProfileNameAndResourceName(ctx context.Context,
	profileName, resourceName string) (models.DeviceResourceResponse, error) {
	var response models.DeviceResourceResponse
	path := pathOf(models.ApiDeviceProfileResource, "profile", profileName, "resource", resourceName)
	err := c.rest.do(ctx, http.MethodGet, path, nil, nil, &response)
	return response, err
}

type deviceServiceClient struct {
	rest *restClient
}

var _ interfaces.DeviceServiceClient = (*deviceServiceClient)(nil)

func (c *deviceServiceClient) DeviceServiceByName(ctx context.Context, name string) (models.DeviceServiceResponse, error) {
	var response models.DeviceServiceResponse
	err := c.rest.do(ctx, http.MethodGet, pathOf(models.ApiDeviceServiceByNameRoute, name), nil, nil, &response)
	return response, err
}
