package app

import "errors"

var (
	ErrBootstrap              = errors.New("failed to bootstrap application service")
	ErrSettingNotFound        = errors.New("application setting not found")
	ErrNoApplicationSettings  = errors.New("no ApplicationSettings configured")
	ErrEmptyExecutionOrder    = errors.New("execution order has no functions")
	ErrUnknownFunction        = errors.New("function not found")
	ErrInvalidFunction        = errors.New("function parameters are invalid")
	ErrNilCustomConfig        = errors.New("custom configuration target is nil")
	ErrCustomConfigSection    = errors.New("unable to load custom configuration section")
	ErrNoPipelineTopics       = errors.New("per topic pipeline has no topics")
	ErrNoTransforms           = errors.New("no transforms provided to pipeline")
	ErrAlreadyRunning         = errors.New("application service is already running")
	ErrTriggerSetup           = errors.New("unable to set up trigger")
	ErrNoMessageBusForPublish = errors.New("message bus is disabled, nothing to publish to")
)
