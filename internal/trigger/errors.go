package trigger

import "errors"

var (
	ErrUnknownTriggerType  = errors.New("unknown trigger type")
	ErrTriggerNameReserved = errors.New("trigger name is reserved")
	ErrTriggerExists       = errors.New("custom trigger already registered")
	ErrEmptyTriggerName    = errors.New("trigger name is empty")
	ErrNilTriggerFactory   = errors.New("trigger factory is nil")
	ErrNoMessageBus        = errors.New("message bus is not available")
	ErrNoSubscribeTopics   = errors.New("no subscribe topics configured")
	ErrSubscribe           = errors.New("unable to subscribe")
	ErrPublishResponse     = errors.New("unable to publish pipeline response")
	ErrInvalidMqttConfig   = errors.New("invalid external MQTT configuration")
	ErrRouterNotConfigured = errors.New("http router is not configured")
	ErrReadRequestBody     = errors.New("unable to read request body")
)
