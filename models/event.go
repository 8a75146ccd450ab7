package models

import (
	"encoding/base64"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Tags are free-form key/value annotations attached to events and readings.
type Tags map[string]any

// Event is a collection of readings taken from one device source at one
// moment.
type Event struct {
	ApiVersion  string    `json:"apiVersion"`
	Id          string    `json:"id"`
	DeviceName  string    `json:"deviceName"`
	ProfileName string    `json:"profileName"`
	SourceName  string    `json:"sourceName"`
	Origin      int64     `json:"origin"`
	Readings    []Reading `json:"readings"`
	Tags        Tags      `json:"tags"`
}

// AddEventRequest wraps an Event the way core services and device services
// publish it.
type AddEventRequest struct {
	ApiVersion string `json:"apiVersion"`
	RequestId  string `json:"requestId,omitempty"`
	Event      Event  `json:"event"`
}

// NewEvent returns an Event with a fresh id, the current origin and no
// readings.
func NewEvent(profileName, deviceName, sourceName string) Event {
	return Event{
		ApiVersion:  ApiVersion,
		Id:          uuid.NewString(),
		DeviceName:  deviceName,
		ProfileName: profileName,
		SourceName:  sourceName,
		Origin:      time.Now().UnixNano(),
		Readings:    []Reading{},
		Tags:        Tags{},
	}
}

func NewAddEventRequest(event Event) AddEventRequest {
	return AddEventRequest{
		ApiVersion: ApiVersion,
		RequestId:  uuid.NewString(),
		Event:      event,
	}
}

// AddSimpleReading formats value according to valueType and appends the
// reading.
func (e *Event) AddSimpleReading(resourceName, valueType string, value any) error {
	reading, err := NewSimpleReading(e.ProfileName, e.DeviceName, resourceName, valueType, value)
	if err != nil {
		return err
	}

	e.Readings = append(e.Readings, reading)
	return nil
}

// AddBaseReading appends a simple reading whose value is already formatted.
func (e *Event) AddBaseReading(resourceName, valueType, value string) {
	reading := newBaseReading(e.ProfileName, e.DeviceName, resourceName, valueType)
	reading.Value = value
	e.Readings = append(e.Readings, reading)
}

func (e *Event) AddBinaryReading(resourceName string, binaryValue []byte, mediaType string) {
	e.Readings = append(e.Readings, NewBinaryReading(e.ProfileName, e.DeviceName, resourceName, binaryValue, mediaType))
}

func (e *Event) AddObjectReading(resourceName string, objectValue any) {
	e.Readings = append(e.Readings, NewObjectReading(e.ProfileName, e.DeviceName, resourceName, objectValue))
}

// ToXML renders the event as an XML document with UpperCamel element names.
func (e Event) ToXML() (string, error) {
	x := xmlEvent{
		ApiVersion:  e.ApiVersion,
		Id:          e.Id,
		DeviceName:  e.DeviceName,
		ProfileName: e.ProfileName,
		SourceName:  e.SourceName,
		Origin:      e.Origin,
		Tags:        e.Tags,
	}
	if x.ApiVersion == "" {
		x.ApiVersion = ApiVersion
	}

	for _, r := range e.Readings {
		xr, err := newXMLReading(r)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrEventToXML, err)
		}
		x.Readings = append(x.Readings, xr)
	}

	data, err := xml.Marshal(x)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEventToXML, err)
	}

	return xmlHeader + string(data), nil
}

// Optimized returns a copy of the event whose readings do not repeat the
// device and profile names of the event.
func (e Event) Optimized() Event {
	optimized := e
	optimized.Readings = make([]Reading, len(e.Readings))
	for i, r := range e.Readings {
		if r.DeviceName == e.DeviceName {
			r.DeviceName = ""
		}
		if r.ProfileName == e.ProfileName {
			r.ProfileName = ""
		}
		optimized.Readings[i] = r
	}
	return optimized
}

type xmlEvent struct {
	XMLName     xml.Name     `xml:"Event"`
	ApiVersion  string       `xml:"ApiVersion"`
	Id          string       `xml:"Id"`
	DeviceName  string       `xml:"DeviceName"`
	ProfileName string       `xml:"ProfileName"`
	SourceName  string       `xml:"SourceName"`
	Origin      int64        `xml:"Origin"`
	Readings    []xmlReading `xml:"Readings"`
	Tags        Tags         `xml:"Tags"`
}

type xmlReading struct {
	Id           string `xml:"Id"`
	Origin       int64  `xml:"Origin"`
	DeviceName   string `xml:"DeviceName"`
	ResourceName string `xml:"ResourceName"`
	ProfileName  string `xml:"ProfileName"`
	ValueType    string `xml:"ValueType"`
	Units        string `xml:"Units,omitempty"`
	Tags         Tags   `xml:"Tags,omitempty"`
	Value        string `xml:"Value,omitempty"`
	BinaryValue  string `xml:"BinaryValue,omitempty"`
	MediaType    string `xml:"MediaType,omitempty"`
	ObjectValue  string `xml:"ObjectValue,omitempty"`
}

func newXMLReading(r Reading) (xmlReading, error) {
	xr := xmlReading{
		Id:           r.Id,
		Origin:       r.Origin,
		DeviceName:   r.DeviceName,
		ResourceName: r.ResourceName,
		ProfileName:  r.ProfileName,
		ValueType:    r.ValueType,
		Units:        r.Units,
		Tags:         r.Tags,
		Value:        r.Value,
		MediaType:    r.MediaType,
	}
	if len(r.BinaryValue) > 0 {
		xr.BinaryValue = base64.StdEncoding.EncodeToString(r.BinaryValue)
	}
	if r.ObjectValue != nil {
		data, err := json.Marshal(r.ObjectValue)
		if err != nil {
			return xmlReading{}, err
		}
		xr.ObjectValue = string(data)
	}
	return xr, nil
}

// MarshalXML writes each tag as a child element named after its key.
// Keys are written in sorted order.
func (t Tags) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, key := range slices.Sorted(maps.Keys(t)) {
		elem := xml.StartElement{Name: xml.Name{Local: key}}
		if err := e.EncodeElement(fmt.Sprint(t[key]), elem); err != nil {
			return err
		}
	}

	return e.EncodeToken(start.End())
}
