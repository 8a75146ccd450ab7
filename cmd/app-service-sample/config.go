package main

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// appCustomSection is the name of the custom configuration section.
const appCustomSection = "AppCustom"

// AppCustomConfig is the AppCustom section of the configuration.
type AppCustomConfig struct {
	ResourceNames string         `yaml:"ResourceNames" json:"resourceNames"`
	MQTTExport    MQTTExportInfo `yaml:"MQTTExport" json:"mqttExport"`
}

// MQTTExportInfo locates the broker the filtered events are exported to.
type MQTTExportInfo struct {
	BrokerAddress string `yaml:"BrokerAddress" json:"brokerAddress"`
	Topic         string `yaml:"Topic" json:"topic"`
	ClientId      string `yaml:"ClientId" json:"clientId"`
	SecretName    string `yaml:"SecretName" json:"secretName"`
	AuthMode      string `yaml:"AuthMode" json:"authMode"`
	QoS           byte   `yaml:"QoS" json:"qos"`
	Retain        bool   `yaml:"Retain" json:"retain"`
}

// UpdateFromRaw decodes a raw AppCustom section into c. c is left
// unchanged when the section is malformed or invalid.
func (c *AppCustomConfig) UpdateFromRaw(rawConfig any) bool {
	data, err := yaml.Marshal(rawConfig)
	if err != nil {
		return false
	}

	var updated AppCustomConfig
	if err = yaml.Unmarshal(data, &updated); err != nil {
		return false
	}
	if err = updated.Validate(); err != nil {
		return false
	}

	*c = updated
	return true
}

func (c *AppCustomConfig) Validate() error {
	err := validation.ValidateStruct(&c.MQTTExport,
		validation.Field(&c.MQTTExport.BrokerAddress, validation.Required),
		validation.Field(&c.MQTTExport.Topic, validation.Required),
		validation.Field(&c.MQTTExport.QoS, validation.Max(byte(2))),
	)
	if err != nil {
		return fmt.Errorf("invalid %s.MQTTExport: %w", appCustomSection, err)
	}
	return nil
}
