package models

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/google/uuid"
)

// MessageEnvelope is the wire format of every message carried by the
// message bus.
type MessageEnvelope struct {
	ApiVersion    string            `json:"apiVersion"`
	ReceivedTopic string            `json:"receivedTopic"`
	CorrelationID string            `json:"correlationID"`
	RequestID     string            `json:"requestID"`
	ErrorCode     int               `json:"errorCode"`
	Payload       []byte            `json:"payload"`
	ContentType   string            `json:"contentType"`
	QueryParams   map[string]string `json:"queryParams,omitempty"`
}

type envelopeAlias MessageEnvelope

type envelopeWire struct {
	envelopeAlias
	Payload any `json:"payload"`
}

type envelopeWireIn struct {
	envelopeAlias
	Payload json.RawMessage `json:"payload"`
}

// NewMessageEnvelope creates an envelope for payload. The correlation id is
// taken from ctx when present, otherwise a new one is generated.
func NewMessageEnvelope(payload []byte, ctx context.Context) MessageEnvelope {
	correlationID := utils.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	contentType := utils.ContentTypeFromContext(ctx)
	if contentType == "" {
		contentType = ContentTypeJSON
	}

	return MessageEnvelope{
		ApiVersion:    ApiVersion,
		CorrelationID: correlationID,
		Payload:       payload,
		ContentType:   contentType,
		QueryParams:   map[string]string{},
	}
}

func NewMessageEnvelopeForRequest(payload []byte, queryParams map[string]string) MessageEnvelope {
	if queryParams == nil {
		queryParams = map[string]string{}
	}

	return MessageEnvelope{
		ApiVersion:    ApiVersion,
		CorrelationID: uuid.NewString(),
		RequestID:     uuid.NewString(),
		Payload:       payload,
		ContentType:   ContentTypeJSON,
		QueryParams:   queryParams,
	}
}

// NewMessageEnvelopeWithError builds an error response envelope for the
// request identified by requestID.
func NewMessageEnvelopeWithError(requestID, errorMessage string) MessageEnvelope {
	return MessageEnvelope{
		ApiVersion:    ApiVersion,
		CorrelationID: uuid.NewString(),
		RequestID:     requestID,
		ErrorCode:     1,
		Payload:       []byte(errorMessage),
		ContentType:   ContentTypeText,
		QueryParams:   map[string]string{},
	}
}

// BaseContentType returns the content type without parameters, lower-cased.
func (m MessageEnvelope) BaseContentType() string {
	contentType, _, _ := strings.Cut(m.ContentType, ";")
	return strings.ToLower(strings.TrimSpace(contentType))
}

// MarshalJSON embeds JSON payloads as raw JSON. Other payloads, or all of
// them when EDGEX_MSG_BASE64_PAYLOAD is set, are written as base64 strings.
func (m MessageEnvelope) MarshalJSON() ([]byte, error) {
	wire := envelopeWire{envelopeAlias: envelopeAlias(m)}
	if wire.ApiVersion == "" {
		wire.ApiVersion = ApiVersion
	}
	if wire.ContentType == "" {
		wire.ContentType = ContentTypeJSON
	}

	forceBase64, _ := utils.ParseEnvBool(EnvMessageBase64Payload, false)
	switch {
	case len(m.Payload) == 0:
		wire.Payload = nil
	case !forceBase64 && m.BaseContentType() == ContentTypeJSON && json.Valid(m.Payload):
		wire.Payload = json.RawMessage(m.Payload)
	default:
		wire.Payload = base64.StdEncoding.EncodeToString(m.Payload)
	}

	return json.Marshal(wire)
}

func (m *MessageEnvelope) UnmarshalJSON(data []byte) error {
	var wire envelopeWireIn
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	*m = MessageEnvelope(wire.envelopeAlias)
	if m.ContentType == "" {
		m.ContentType = ContentTypeJSON
	}

	raw := bytes.TrimSpace(wire.Payload)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		m.Payload = nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
		}
		if utils.IsBase64Encoded(s) {
			decoded, _ := base64.StdEncoding.DecodeString(s)
			m.Payload = decoded
		} else {
			m.Payload = []byte(s)
		}
	default:
		m.Payload = []byte(raw)
	}

	return nil
}
