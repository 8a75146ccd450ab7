package models

import "time"

// BaseResponse is embedded in every REST response body.
type BaseResponse struct {
	ApiVersion string `json:"apiVersion"`
	RequestId  string `json:"requestId,omitempty"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"statusCode"`
}

func NewBaseResponse(requestID, message string, statusCode int) BaseResponse {
	return BaseResponse{
		ApiVersion: ApiVersion,
		RequestId:  requestID,
		Message:    message,
		StatusCode: statusCode,
	}
}

type PingResponse struct {
	BaseResponse
	Timestamp   string `json:"timestamp"`
	ServiceName string `json:"serviceName"`
}

func NewPingResponse(serviceName string) PingResponse {
	return PingResponse{
		BaseResponse: NewBaseResponse("", "", 200),
		Timestamp:    time.Now().Format(time.UnixDate),
		ServiceName:  serviceName,
	}
}

type VersionResponse struct {
	BaseResponse
	Version     string `json:"version"`
	SdkVersion  string `json:"sdk_version"`
	ServiceName string `json:"serviceName"`
	BuildDate   string `json:"buildDate,omitempty"`
	BuildCommit string `json:"buildCommit,omitempty"`
}

type ConfigResponse struct {
	BaseResponse
	Config      any    `json:"config"`
	ServiceName string `json:"serviceName"`
}

type EventResponse struct {
	BaseResponse
	Event Event `json:"event"`
}

type MultiEventsResponse struct {
	BaseResponse
	TotalCount uint32  `json:"totalCount"`
	Events     []Event `json:"events"`
}

type MultiReadingsResponse struct {
	BaseResponse
	TotalCount uint32    `json:"totalCount"`
	Readings   []Reading `json:"readings"`
}

type DeviceResponse struct {
	BaseResponse
	Device Device `json:"device"`
}

type DeviceResourceResponse struct {
	BaseResponse
	Resource DeviceResource `json:"resource"`
}

type DeviceServiceResponse struct {
	BaseResponse
	Service DeviceService `json:"service"`
}
