package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reading is a single measured value of a device resource. Exactly one of
// the embedded SimpleReading, BinaryReading or ObjectReading carries the value,
// selected by ValueType.
type Reading struct {
	Id           string `json:"id,omitempty"`
	Origin       int64  `json:"origin"`
	DeviceName   string `json:"deviceName"`
	ResourceName string `json:"resourceName"`
	ProfileName  string `json:"profileName"`
	ValueType    string `json:"valueType"`
	Units        string `json:"units,omitempty"`
	Tags         Tags   `json:"tags,omitempty"`
	SimpleReading
	BinaryReading
	ObjectReading
}

type SimpleReading struct {
	Value string `json:"value,omitempty"`
}

type BinaryReading struct {
	BinaryValue []byte `json:"binaryValue,omitempty"`
	MediaType   string `json:"mediaType,omitempty"`
}

type ObjectReading struct {
	ObjectValue any `json:"objectValue,omitempty"`
}

func newBaseReading(profileName, deviceName, resourceName, valueType string) Reading {
	return Reading{
		Id:           uuid.NewString(),
		Origin:       time.Now().UnixNano(),
		DeviceName:   deviceName,
		ResourceName: resourceName,
		ProfileName:  profileName,
		ValueType:    valueType,
	}
}

// NewSimpleReading builds a reading whose value is formatted from value
// according to valueType. The Go type of value must match valueType.
func NewSimpleReading(profileName, deviceName, resourceName, valueType string, value any) (Reading, error) {
	normalized, err := NormalizeValueType(valueType)
	if err != nil {
		return Reading{}, err
	}

	formatted, err := formatSimpleValue(normalized, value)
	if err != nil {
		return Reading{}, err
	}

	reading := newBaseReading(profileName, deviceName, resourceName, normalized)
	reading.Value = formatted
	return reading, nil
}

func NewBinaryReading(profileName, deviceName, resourceName string, binaryValue []byte, mediaType string) Reading {
	reading := newBaseReading(profileName, deviceName, resourceName, ValueTypeBinary)
	reading.BinaryValue = binaryValue
	reading.MediaType = mediaType
	return reading
}

func NewObjectReading(profileName, deviceName, resourceName string, objectValue any) Reading {
	reading := newBaseReading(profileName, deviceName, resourceName, ValueTypeObject)
	reading.ObjectValue = objectValue
	return reading
}

func formatSimpleValue(valueType string, value any) (string, error) {
	mismatch := func() (string, error) {
		return "", fmt.Errorf("%w: %T is not %s", ErrValueTypeMismatch, value, valueType)
	}

	switch valueType {
	case ValueTypeBool:
		v, ok := value.(bool)
		if !ok {
			return mismatch()
		}
		return strconv.FormatBool(v), nil
	case ValueTypeString:
		v, ok := value.(string)
		if !ok {
			return mismatch()
		}
		return v, nil
	case ValueTypeUint8, ValueTypeUint16, ValueTypeUint32, ValueTypeUint64:
		v, ok := toUint64(value)
		if !ok {
			return mismatch()
		}
		return strconv.FormatUint(v, 10), nil
	case ValueTypeInt8, ValueTypeInt16, ValueTypeInt32, ValueTypeInt64:
		v, ok := toInt64(value)
		if !ok {
			return mismatch()
		}
		return strconv.FormatInt(v, 10), nil
	case ValueTypeFloat32:
		v, ok := value.(float32)
		if !ok {
			return mismatch()
		}
		return strconv.FormatFloat(float64(v), 'e', -1, 32), nil
	case ValueTypeFloat64:
		v, ok := value.(float64)
		if !ok {
			return mismatch()
		}
		return strconv.FormatFloat(v, 'e', -1, 64), nil
	case ValueTypeBoolArray:
		v, ok := value.([]bool)
		if !ok {
			return mismatch()
		}
		return formatArray(v, strconv.FormatBool), nil
	case ValueTypeStringArray:
		v, ok := value.([]string)
		if !ok {
			return mismatch()
		}
		return formatArray(v, func(s string) string { return s }), nil
	case ValueTypeFloat64Array:
		v, ok := value.([]float64)
		if !ok {
			return mismatch()
		}
		return formatArray(v, func(f float64) string { return strconv.FormatFloat(f, 'e', -1, 64) }), nil
	case ValueTypeFloat32Array:
		v, ok := value.([]float32)
		if !ok {
			return mismatch()
		}
		return formatArray(v, func(f float32) string { return strconv.FormatFloat(float64(f), 'e', -1, 32) }), nil
	case ValueTypeInt8Array, ValueTypeInt16Array, ValueTypeInt32Array, ValueTypeInt64Array,
		ValueTypeUint8Array, ValueTypeUint16Array, ValueTypeUint32Array, ValueTypeUint64Array:
		return formatIntegerArray(valueType, value)
	}

	return "", fmt.Errorf("%w: %s can not be used for a simple reading", ErrValueTypeMismatch, valueType)
}

func formatIntegerArray(valueType string, value any) (string, error) {
	itoa := func(i int64) string { return strconv.FormatInt(i, 10) }
	utoa := func(u uint64) string { return strconv.FormatUint(u, 10) }

	switch v := value.(type) {
	case []int8:
		return formatArray(v, func(i int8) string { return itoa(int64(i)) }), nil
	case []int16:
		return formatArray(v, func(i int16) string { return itoa(int64(i)) }), nil
	case []int32:
		return formatArray(v, func(i int32) string { return itoa(int64(i)) }), nil
	case []int64:
		return formatArray(v, itoa), nil
	case []uint8:
		return formatArray(v, func(u uint8) string { return utoa(uint64(u)) }), nil
	case []uint16:
		return formatArray(v, func(u uint16) string { return utoa(uint64(u)) }), nil
	case []uint32:
		return formatArray(v, func(u uint32) string { return utoa(uint64(u)) }), nil
	case []uint64:
		return formatArray(v, utoa), nil
	}

	return "", fmt.Errorf("%w: %T is not %s", ErrValueTypeMismatch, value, valueType)
}

func formatArray[T any](values []T, format func(T) string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, format(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	}
	return 0, false
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}
