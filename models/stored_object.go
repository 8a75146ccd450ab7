package models

import "maps"

// StoredObject is an export payload persisted for a later retry.
//
// Version holds the hash of the pipeline the payload failed in; a stored
// object is only retried while the pipeline keeps the same hash.
type StoredObject struct {
	ID               string            `json:"id"`
	AppServiceKey    string            `json:"appServiceKey"`
	Payload          []byte            `json:"payload"`
	RetryCount       int               `json:"retryCount"`
	PipelineID       string            `json:"pipelineId"`
	PipelinePosition int               `json:"pipelinePosition"`
	Version          string            `json:"version"`
	CorrelationID    string            `json:"correlationID"`
	ContextData      map[string]string `json:"contextData"`
}

func NewStoredObject(appServiceKey string, payload []byte, pipelineID string, pipelinePosition int,
	version string, contextData map[string]string) StoredObject {
	return StoredObject{
		AppServiceKey:    appServiceKey,
		Payload:          payload,
		PipelineID:       pipelineID,
		PipelinePosition: pipelinePosition,
		Version:          version,
		ContextData:      maps.Clone(contextData),
	}
}
