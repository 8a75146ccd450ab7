// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transforms

import (
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Parameter names of the configurable functions. Lookups are
// case-insensitive.
const (
	ParamFilterValues        = "FilterValues"
	ParamFilterOut           = "FilterOut"
	ParamType                = "Type"
	ParamAlgorithm           = "Algorithm"
	ParamSecretName          = "SecretName"
	ParamSecretValueKey      = "SecretValueKey"
	ParamBrokerAddress       = "BrokerAddress"
	ParamTopic               = "Topic"
	ParamClientID            = "ClientId"
	ParamQos                 = "Qos"
	ParamRetain              = "Retain"
	ParamAutoReconnect       = "AutoReconnect"
	ParamSkipVerify          = "SkipVerify"
	ParamAuthMode            = "AuthMode"
	ParamKeepAlive           = "KeepAlive"
	ParamConnectTimeout      = "ConnectTimeout"
	ParamPersistOnError      = "PersistOnError"
	ParamPreConnect          = "PreConnect"
	ParamPreConnectRetries   = "PreConnectRetryCount"
	ParamPreConnectInterval  = "PreConnectRetryInterval"
	ParamURL                 = "Url"
	ParamMethod              = "Method"
	ParamMimeType            = "MimeType"
	ParamContinueOnSendError = "ContinueOnSendError"
	ParamReturnInputData     = "ReturnInputData"
	ParamHeaderName          = "HeaderName"
	ParamTags                = "Tags"
	ParamResponseContentType = "ResponseContentType"
	ParamProfileName         = "ProfileName"
	ParamDeviceName          = "DeviceName"
	ParamResourceName        = "ResourceName"
	ParamValueType           = "ValueType"
	ParamMediaType           = "MediaType"
)

// Values accepted by the Type, Algorithm and Method parameters.
const (
	TransformXML  = "xml"
	TransformJSON = "json"

	CompressGZIP = "gzip"
	CompressZLIB = "zlib"

	EncryptAES256 = "aes256"

	MethodPost = "post"
	MethodPut  = "put"
)

const (
	defaultPreConnectRetries  = 6
	defaultPreConnectInterval = 5 * time.Second
)

// ConfigurableFunction builds an AppFunction from string parameters. It
// returns nil when the parameters are invalid.
type ConfigurableFunction func(parameters map[string]string) interfaces.AppFunction

// Configurable builds the SDK functions from the pipeline configuration.
type Configurable struct {
	lc      *logger.Logger
	secrets interfaces.SecretProvider
}

func NewConfigurable(lc *logger.Logger) *Configurable {
	return NewConfigurableWithSecrets(lc, nil)
}

// NewConfigurableWithSecrets enables the MQTT export pre-connect, which
// needs the secrets before the first message.
func NewConfigurableWithSecrets(lc *logger.Logger, secrets interfaces.SecretProvider) *Configurable {
	return &Configurable{lc: lc, secrets: secrets}
}

// Function returns the builder registered under name.
func (c *Configurable) Function(name string) (ConfigurableFunction, bool) {
	functions := map[string]ConfigurableFunction{
		"FilterByProfileName":  c.FilterByProfileName,
		"FilterByDeviceName":   c.FilterByDeviceName,
		"FilterBySourceName":   c.FilterBySourceName,
		"FilterByResourceName": c.FilterByResourceName,
		"Transform":            c.Transform,
		"Compress":             c.Compress,
		"Encrypt":              c.Encrypt,
		"MQTTExport":           c.MQTTExport,
		"HTTPExport":           c.HTTPExport,
		"AddTags":              c.AddTags,
		"SetResponseData":      c.SetResponseData,
		"PushToCore":           c.PushToCore,
	}

	fn, ok := functions[name]
	return fn, ok
}

func (c *Configurable) FilterByProfileName(parameters map[string]string) interfaces.AppFunction {
	filter, ok := c.filter("FilterByProfileName", parameters)
	if !ok {
		return nil
	}
	return filter.FilterByProfileName
}

func (c *Configurable) FilterByDeviceName(parameters map[string]string) interfaces.AppFunction {
	filter, ok := c.filter("FilterByDeviceName", parameters)
	if !ok {
		return nil
	}
	return filter.FilterByDeviceName
}

func (c *Configurable) FilterBySourceName(parameters map[string]string) interfaces.AppFunction {
	filter, ok := c.filter("FilterBySourceName", parameters)
	if !ok {
		return nil
	}
	return filter.FilterBySourceName
}

func (c *Configurable) FilterByResourceName(parameters map[string]string) interfaces.AppFunction {
	filter, ok := c.filter("FilterByResourceName", parameters)
	if !ok {
		return nil
	}
	return filter.FilterByResourceName
}

func (c *Configurable) filter(function string, parameters map[string]string) (Filter, bool) {
	p := params(parameters)

	values, ok := p.required(c.lc, function, ParamFilterValues)
	if !ok {
		return Filter{}, false
	}
	filterOut, ok := p.boolean(c.lc, function, ParamFilterOut, false)
	if !ok {
		return Filter{}, false
	}

	var filter Filter
	if filterOut {
		filter = NewFilterOut(utils.SplitAndTrim(values))
	} else {
		filter = NewFilterFor(utils.SplitAndTrim(values))
	}
	if filter.err != nil {
		c.lc.Error().Err(filter.err).Str("function", function).Msg("invalid filter values")
		return Filter{}, false
	}
	return filter, true
}

func (c *Configurable) Transform(parameters map[string]string) interfaces.AppFunction {
	p := params(parameters)
	transformType, ok := p.required(c.lc, "Transform", ParamType)
	if !ok {
		return nil
	}

	conversion := NewConversion()
	switch strings.ToLower(transformType) {
	case TransformXML:
		return conversion.TransformToXML
	case TransformJSON:
		return conversion.TransformToJSON
	}

	c.lc.Error().Str("function", "Transform").Str(ParamType, transformType).Msg("invalid transform type, must be xml or json")
	return nil
}

func (c *Configurable) Compress(parameters map[string]string) interfaces.AppFunction {
	p := params(parameters)
	algorithm, ok := p.required(c.lc, "Compress", ParamAlgorithm)
	if !ok {
		return nil
	}

	compression := NewCompression()
	switch strings.ToLower(algorithm) {
	case CompressGZIP:
		return compression.CompressWithGZIP
	case CompressZLIB:
		return compression.CompressWithZLIB
	}

	c.lc.Error().Str("function", "Compress").Str(ParamAlgorithm, algorithm).Msg("invalid compression algorithm, must be gzip or zlib")
	return nil
}

func (c *Configurable) Encrypt(parameters map[string]string) interfaces.AppFunction {
	const function = "Encrypt"
	p := params(parameters)

	algorithm := p.get(ParamAlgorithm)
	if algorithm != "" && strings.ToLower(algorithm) != EncryptAES256 {
		c.lc.Error().Str("function", function).Str(ParamAlgorithm, algorithm).Msg("invalid encryption algorithm, must be aes256")
		return nil
	}

	secretName, ok := p.required(c.lc, function, ParamSecretName)
	if !ok {
		return nil
	}
	secretKey, ok := p.required(c.lc, function, ParamSecretValueKey)
	if !ok {
		return nil
	}

	return NewAESEncryption(secretName, secretKey).EncryptWithAES256
}

func (c *Configurable) MQTTExport(parameters map[string]string) interfaces.AppFunction {
	const function = "MQTTExport"
	p := params(parameters)

	broker, ok := p.required(c.lc, function, ParamBrokerAddress)
	if !ok {
		return nil
	}
	topic, ok := p.required(c.lc, function, ParamTopic)
	if !ok {
		return nil
	}

	qos, ok := p.integer(c.lc, function, ParamQos, 0)
	if !ok || qos < 0 || qos > 2 {
		c.lc.Error().Str("function", function).Int(ParamQos, qos).Msg("invalid QoS, must be 0, 1 or 2")
		return nil
	}

	retain, ok1 := p.boolean(c.lc, function, ParamRetain, false)
	autoReconnect, ok2 := p.boolean(c.lc, function, ParamAutoReconnect, false)
	skipVerify, ok3 := p.boolean(c.lc, function, ParamSkipVerify, false)
	persistOnError, ok4 := p.boolean(c.lc, function, ParamPersistOnError, false)
	preConnect, ok5 := p.boolean(c.lc, function, ParamPreConnect, false)
	retries, ok6 := p.integer(c.lc, function, ParamPreConnectRetries, defaultPreConnectRetries)
	interval, ok7 := p.duration(c.lc, function, ParamPreConnectInterval, defaultPreConnectInterval)
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7) {
		return nil
	}

	authMode := p.get(ParamAuthMode)
	if authMode == "" {
		authMode = "none"
	}

	sender := NewMQTTSecretSender(MQTTSecretConfig{
		BrokerAddress:  broker,
		ClientId:       p.get(ParamClientID),
		Topic:          topic,
		SecretName:     p.get(ParamSecretName),
		AuthMode:       authMode,
		QoS:            byte(qos),
		Retain:         retain,
		AutoReconnect:  autoReconnect,
		SkipCertVerify: skipVerify,
		KeepAlive:      p.get(ParamKeepAlive),
		ConnectTimeout: p.get(ParamConnectTimeout),
	}, persistOnError)

	if preConnect {
		if c.secrets == nil {
			c.lc.Warn().Str("function", function).Msg("pre-connect skipped, secrets are not available yet")
		} else {
			go sender.PreConnectToBroker(c.lc, c.secrets, retries, interval)
		}
	}

	return sender.MQTTSend
}

func (c *Configurable) HTTPExport(parameters map[string]string) interfaces.AppFunction {
	const function = "HTTPExport"
	p := params(parameters)

	method, ok := p.required(c.lc, function, ParamMethod)
	if !ok {
		return nil
	}
	url, ok := p.required(c.lc, function, ParamURL)
	if !ok {
		return nil
	}

	persistOnError, ok1 := p.boolean(c.lc, function, ParamPersistOnError, false)
	continueOnError, ok2 := p.boolean(c.lc, function, ParamContinueOnSendError, false)
	returnInput, ok3 := p.boolean(c.lc, function, ParamReturnInputData, false)
	if !(ok1 && ok2 && ok3) {
		return nil
	}

	options := HTTPSenderOptions{
		URL:                 url,
		MimeType:            p.get(ParamMimeType),
		PersistOnError:      persistOnError,
		ContinueOnSendError: continueOnError,
		ReturnInputData:     returnInput,
		HTTPHeaderName:      p.get(ParamHeaderName),
		SecretName:          p.get(ParamSecretName),
		SecretValueKey:      p.get(ParamSecretValueKey),
	}

	if options.HTTPHeaderName != "" && (options.SecretName == "" || options.SecretValueKey == "") {
		c.lc.Error().Str("function", function).Msg("HeaderName requires SecretName and SecretValueKey")
		return nil
	}

	sender := NewHTTPSenderWithOptions(options)
	switch strings.ToLower(method) {
	case MethodPost:
		return sender.HTTPPost
	case MethodPut:
		return sender.HTTPPut
	}

	c.lc.Error().Str("function", function).Str(ParamMethod, method).Msg("invalid HTTP method, must be post or put")
	return nil
}

// AddTags reads Tags as a comma separated list of key:value pairs.
func (c *Configurable) AddTags(parameters map[string]string) interfaces.AppFunction {
	const function = "AddTags"
	p := params(parameters)

	list, ok := p.required(c.lc, function, ParamTags)
	if !ok {
		return nil
	}

	tags := make(map[string]any)
	for _, pair := range utils.SplitAndTrim(list) {
		key, value, found := strings.Cut(pair, ":")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !found || key == "" || value == "" {
			c.lc.Error().Str("function", function).Str("tag", pair).Msg("invalid tag, must be key:value")
			return nil
		}
		tags[key] = value
	}

	return NewTags(tags).AddTags
}

func (c *Configurable) SetResponseData(parameters map[string]string) interfaces.AppFunction {
	responseData := NewResponseData()
	responseData.ResponseContentType = params(parameters).get(ParamResponseContentType)
	return responseData.SetResponseData
}

func (c *Configurable) PushToCore(parameters map[string]string) interfaces.AppFunction {
	const function = "PushToCore"
	p := params(parameters)

	profileName, ok1 := p.required(c.lc, function, ParamProfileName)
	deviceName, ok2 := p.required(c.lc, function, ParamDeviceName)
	resourceName, ok3 := p.required(c.lc, function, ParamResourceName)
	valueType, ok4 := p.required(c.lc, function, ParamValueType)
	if !(ok1 && ok2 && ok3 && ok4) {
		return nil
	}

	normalized, err := models.NormalizeValueType(valueType)
	if err != nil {
		c.lc.Error().Err(err).Str("function", function).Msg("invalid value type")
		return nil
	}

	switch normalized {
	case models.ValueTypeBinary:
		mediaType, ok := p.required(c.lc, function, ParamMediaType)
		if !ok {
			return nil
		}
		return NewCoreDataBinaryReading(profileName, deviceName, resourceName, mediaType).PushToCore
	case models.ValueTypeObject:
		return NewCoreDataObjectReading(profileName, deviceName, resourceName).PushToCore
	}
	return NewCoreDataSimpleReading(profileName, deviceName, resourceName, normalized).PushToCore
}

// params looks parameters up case-insensitively.
type params map[string]string

func (p params) get(name string) string {
	if v, ok := p[name]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range p {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (p params) required(lc *logger.Logger, function, name string) (string, bool) {
	v := p.get(name)
	if v == "" {
		lc.Error().Str("function", function).Str("parameter", name).Msg("mandatory parameter is missing")
		return "", false
	}
	return v, true
}

func (p params) boolean(lc *logger.Logger, function, name string, def bool) (bool, bool) {
	v := p.get(name)
	if v == "" {
		return def, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		lc.Error().Err(err).Str("function", function).Str("parameter", name).Msg("invalid boolean parameter")
		return false, false
	}
	return b, true
}

func (p params) integer(lc *logger.Logger, function, name string, def int) (int, bool) {
	v := p.get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		lc.Error().Err(err).Str("function", function).Str("parameter", name).Msg("invalid integer parameter")
		return 0, false
	}
	return n, true
}

func (p params) duration(lc *logger.Logger, function, name string, def time.Duration) (time.Duration, bool) {
	v := p.get(name)
	if v == "" {
		return def, true
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		lc.Error().Err(err).Str("function", function).Str("parameter", name).Msg("invalid duration parameter")
		return 0, false
	}
	return d, true
}
