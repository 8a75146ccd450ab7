package utils

import "encoding/base64"

// IsBase64Encoded reports whether data is canonical standard base64: it
// must decode and re-encode to the same string.
func IsBase64Encoded(data string) bool {
	if data == "" {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return false
	}

	return base64.StdEncoding.EncodeToString(decoded) == data
}
