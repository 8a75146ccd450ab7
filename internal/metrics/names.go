package metrics

// Base names of the SDK metrics. Registration names append "-<id>" where a
// metric exists once per pipeline or export.
const (
	PipelineMessagesProcessedName     = "PipelineMessagesProcessed"
	PipelineMessageProcessingTimeName = "PipelineMessageProcessingTime"
	PipelineProcessingErrorsName      = "PipelineProcessingErrors"
	StoreForwardQueueSizeName         = "StoreForwardQueueSize"
	HttpExportSizeName                = "HttpExportSize"
	HttpExportErrorsName              = "HttpExportErrors"
	MqttExportSizeName                = "MqttExportSize"
	MqttExportErrorsName              = "MqttExportErrors"
)

// Const label names added to per-pipeline and per-export metrics.
const (
	PipelineIdTag = "pipeline"
	ExportDestTag = "destination"
	ServiceTag    = "service"
)

// RegistrationName returns the name a per-id metric is registered under.
func RegistrationName(baseName, id string) string {
	if id == "" {
		return baseName
	}
	return baseName + "-" + id
}
