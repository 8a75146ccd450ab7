//go:generate mockgen -source=clients.go -destination=../../internal/mock/clients_mock.go -package=mock

package interfaces

import (
	"context"

	"github.com/MKhiriev/app-functions-sdk-go/models"
)

type EventClient interface {
	Add(ctx context.Context, req models.AddEventRequest) (models.BaseResponse, error)
	EventsByDeviceName(ctx context.Context, name string, offset, limit int) (models.MultiEventsResponse, error)
}

type ReadingClient interface {
	ReadingsByDeviceName(ctx context.Context, name string, offset, limit int) (models.MultiReadingsResponse, error)
}

type CommandClient interface {
	IssueGetCommandByName(ctx context.Context, deviceName, commandName string, dsPushEvent, dsReturnEvent bool) (*models.EventResponse, error)
	IssueSetCommandByName(ctx context.Context, deviceName, commandName string, settings map[string]any) (models.BaseResponse, error)
}

type DeviceClient interface {
	DeviceByName(ctx context.Context, name string) (models.DeviceResponse, error)
}

type DeviceProfileClient interface {
	DeviceResourceByProfileNameAndResourceName(ctx context.Context, profileName, resourceName string) (models.DeviceResourceResponse, error)
}

type DeviceServiceClient interface {
	DeviceServiceByName(ctx context.Context, name string) (models.DeviceServiceResponse, error)
}
