package models

// SecretRequest is the body of a POST to the secret route.
type SecretRequest struct {
	ApiVersion string               `json:"apiVersion"`
	RequestId  string               `json:"requestId,omitempty"`
	SecretName string               `json:"secretName"`
	SecretData []SecretDataKeyValue `json:"secretData"`
}

type SecretDataKeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ToMap converts the secret data pairs into a map.
func (r SecretRequest) ToMap() map[string]string {
	secrets := make(map[string]string, len(r.SecretData))
	for _, kv := range r.SecretData {
		secrets[kv.Key] = kv.Value
	}
	return secrets
}
