package crypto

// Cipher encrypts payloads with a key derived from a secret.
//
// The sealed blob layout is:
//
//	salt (16 bytes) ‖ nonce (12 bytes) ‖ ciphertext
type Cipher interface {
	// DeriveKey derives a 256-bit key from secret and salt using Argon2id.
	DeriveKey(secret string, salt []byte) []byte

	// Encrypt seals plaintext with a key derived from secret and a fresh salt.
	Encrypt(plaintext []byte, secret string) ([]byte, error)

	// Decrypt opens a blob produced by Encrypt.
	Decrypt(blob []byte, secret string) ([]byte, error)
}
