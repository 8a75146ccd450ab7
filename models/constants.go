package models

// API versioning and routes.
const (
	ApiVersion = "v3"
	ApiBase    = "/api/v3"

	ApiConfigRoute  = ApiBase + "/config"
	ApiPingRoute    = ApiBase + "/ping"
	ApiVersionRoute = ApiBase + "/version"
	ApiSecretRoute  = ApiBase + "/secret"
	ApiTriggerRoute = ApiBase + "/trigger"
	ApiMetricsRoute = "/metrics"

	ApiEventRoute               = ApiBase + "/event"
	ApiReadingRoute             = ApiBase + "/reading"
	ApiDeviceRoute              = ApiBase + "/device"
	ApiDeviceProfileRoute       = ApiBase + "/deviceprofile"
	ApiDeviceServiceRoute       = ApiBase + "/deviceservice"
	ApiDeviceProfileResource    = ApiDeviceProfileRoute + "/resource"
	ApiDeviceByNameRoute        = ApiDeviceRoute + "/name"
	ApiDeviceServiceByNameRoute = ApiDeviceServiceRoute + "/name"
)

// HTTP headers and content types.
const (
	CorrelationHeader = "X-Correlation-ID"
	ContentType       = "Content-Type"
	Accept            = "Accept"

	ContentTypeCBOR = "application/cbor"
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/x-yaml"
	ContentTypeText = "text/plain"
	ContentTypeXML  = "application/xml"
)

// Environment variables that alter payload encoding.
const (
	EnvMessageBase64Payload = "EDGEX_MSG_BASE64_PAYLOAD"
	EnvOptimizeEventPayload = "EDGEX_OPTIMIZE_EVENT_PAYLOAD"
	EnvSecretStore          = "EDGEX_SECURITY_SECRET_STORE"
)

// Core service keys used in the Clients configuration section.
const (
	CoreDataServiceKey     = "core-data"
	CoreMetadataServiceKey = "core-metadata"
	CoreCommandServiceKey  = "core-command"
)

const (
	DefaultBaseTopic     = "edgex"
	MetricsPublishTopic  = "telemetry"
	TopicLevelSeparator  = "/"
	TopicWildcard        = "#"
	TopicSingleLevelWild = "+"
)
