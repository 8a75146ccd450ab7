package models

// Device is the metadata record of a device managed by a device service.
type Device struct {
	Id             string                    `json:"id,omitempty"`
	Name           string                    `json:"name"`
	Description    string                    `json:"description,omitempty"`
	AdminState     string                    `json:"adminState"`
	OperatingState string                    `json:"operatingState"`
	Labels         []string                  `json:"labels,omitempty"`
	ServiceName    string                    `json:"serviceName"`
	ProfileName    string                    `json:"profileName"`
	Protocols      map[string]map[string]any `json:"protocols,omitempty"`
	Tags           map[string]any            `json:"tags,omitempty"`
	Properties     map[string]any            `json:"properties,omitempty"`
}

type DeviceProfile struct {
	Id              string           `json:"id,omitempty"`
	Name            string           `json:"name"`
	Manufacturer    string           `json:"manufacturer,omitempty"`
	Description     string           `json:"description,omitempty"`
	Model           string           `json:"model,omitempty"`
	Labels          []string         `json:"labels,omitempty"`
	DeviceResources []DeviceResource `json:"deviceResources"`
}

// DeviceResource describes one value a device can report or accept.
type DeviceResource struct {
	Description string             `json:"description,omitempty"`
	Name        string             `json:"name"`
	IsHidden    bool               `json:"isHidden"`
	Properties  ResourceProperties `json:"properties"`
	Attributes  map[string]any     `json:"attributes,omitempty"`
	Tags        map[string]any     `json:"tags,omitempty"`
}

type ResourceProperties struct {
	ValueType    string         `json:"valueType"`
	ReadWrite    string         `json:"readWrite"`
	Units        string         `json:"units,omitempty"`
	Minimum      *float64       `json:"minimum,omitempty"`
	Maximum      *float64       `json:"maximum,omitempty"`
	DefaultValue string         `json:"defaultValue,omitempty"`
	MediaType    string         `json:"mediaType,omitempty"`
	Optional     map[string]any `json:"optional,omitempty"`
}

type DeviceService struct {
	Id          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	BaseAddress string   `json:"baseAddress"`
	AdminState  string   `json:"adminState"`
	Labels      []string `json:"labels,omitempty"`
}
