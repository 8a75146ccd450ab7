package transforms

import (
	"encoding/base64"
	"fmt"

	"github.com/MKhiriev/app-functions-sdk-go/internal/crypto"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/util"
)

// Encryption encrypts pipeline data with AES-256-GCM. The key is derived
// from the secret SecretKey of SecretName.
type Encryption struct {
	SecretName string
	SecretKey  string

	cipher crypto.Cipher
}

func NewAESEncryption(secretName, secretKey string) Encryption {
	return Encryption{
		SecretName: secretName,
		SecretKey:  secretKey,
		cipher:     crypto.NewAESCipher(),
	}
}

// EncryptWithAES256 returns the base64 encoded salt, nonce and ciphertext.
func (e Encryption) EncryptWithAES256(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	const function = "EncryptWithAES256"
	if data == nil {
		return false, noDataError(function, ctx)
	}

	ctx.LoggingClient().Debug().Str("pipeline", ctx.PipelineId()).Msg("encrypting with AES256")

	plaintext, err := util.CoerceType(data)
	if err != nil {
		return false, err
	}

	key, err := e.encryptionKey(ctx)
	if err != nil {
		return false, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), err)
	}

	blob, err := e.cipher.Encrypt(plaintext, key)
	if err != nil {
		return false, fmt.Errorf("function %s in pipeline '%s': %w", function, ctx.PipelineId(), err)
	}

	ctx.SetResponseContentType(models.ContentTypeText)
	return true, []byte(base64.StdEncoding.EncodeToString(blob))
}

func (e Encryption) encryptionKey(ctx interfaces.AppFunctionContext) (string, error) {
	secrets := ctx.SecretProvider()
	if secrets == nil {
		return "", ErrEncryptionKey
	}

	values, err := secrets.GetSecret(e.SecretName, e.SecretKey)
	if err != nil {
		return "", fmt.Errorf("%w from %s/%s: %w", ErrEncryptionKey, e.SecretName, e.SecretKey, err)
	}
	return values[e.SecretKey], nil
}
