package transforms

import (
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/util"
)

// ResponseData sets the pipeline data as the trigger response.
type ResponseData struct {
	ResponseContentType string
}

func NewResponseData() *ResponseData {
	return &ResponseData{}
}

func (f *ResponseData) SetResponseData(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	if data == nil {
		return false, noDataError("SetResponseData", ctx)
	}

	output, err := util.CoerceType(data)
	if err != nil {
		return false, err
	}

	if f.ResponseContentType != "" {
		ctx.SetResponseContentType(f.ResponseContentType)
	}
	ctx.SetResponseData(output)
	return true, data
}
