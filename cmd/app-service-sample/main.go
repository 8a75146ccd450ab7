package main

import (
	"os"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/appsdk"
)

const serviceKey = "app-service-sample"

func main() {
	service, ok := appsdk.NewAppService(serviceKey)
	if !ok {
		os.Exit(1)
	}
	lc := service.LoggingClient()

	if err := newSampleApp(service).setup(); err != nil {
		lc.Err(err).Msg("failed to set up the sample service")
		os.Exit(1)
	}

	if err := service.Run(); err != nil {
		lc.Err(err).Msg("Run returned error")
		os.Exit(1)
	}
}
