package postgres

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// secretVersion prefixes every blob so the format can change later
	secretVersion = 0x01

	nonceSize = 12
	keySize   = 32
)

// hkdfInfo scopes derived keys to api key storage
var hkdfInfo = []byte("descriptor-studio api key v1")

var (
	// ErrInvalidKeySize is returned when the encryption key is not 32 bytes.
	ErrInvalidKeySize = errors.New("encryption key must be 32 bytes")

	// ErrEmptySecret is returned when deriving a key from an empty secret.
	ErrEmptySecret = errors.New("secret must not be empty")

	// ErrInvalidBlobSize is returned when the encrypted blob is too small.
	ErrInvalidBlobSize = errors.New("encrypted blob is too small")

	// ErrUnsupportedVersion is returned when the blob version is not supported.
	ErrUnsupportedVersion = errors.New("unsupported secret blob version")

	// ErrDecryptionFailed is returned when decryption fails (wrong key or corrupted data).
	ErrDecryptionFailed = errors.New("failed to decrypt secret blob")
)

// SecretEncryptor seals source api keys with AES-256-GCM.
// Blob layout: version(1) || nonce(12) || ciphertext(N)
type SecretEncryptor struct {
	gcm cipher.AEAD
}

// NewSecretEncryptor creates an encryptor from a raw 32-byte key.
func NewSecretEncryptor(key []byte) (*SecretEncryptor, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &SecretEncryptor{gcm: gcm}, nil
}

// NewSecretEncryptorFromSecret derives the AES key from an operator-supplied
// secret of any length using HKDF-SHA256.
func NewSecretEncryptorFromSecret(secret string) (*SecretEncryptor, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, hkdfInfo), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return NewSecretEncryptor(key)
}

// EncryptString seals s into a fresh blob. Each call uses a new nonce.
func (e *SecretEncryptor) EncryptString(s string) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	blob := make([]byte, 1+nonceSize, 1+nonceSize+len(s)+e.gcm.Overhead())
	blob[0] = secretVersion
	copy(blob[1:], nonce)
	return e.gcm.Seal(blob, nonce, []byte(s), nil), nil
}

// DecryptString opens a blob produced by EncryptString.
func (e *SecretEncryptor) DecryptString(blob []byte) (string, error) {
	if len(blob) < 1+nonceSize+e.gcm.Overhead() {
		return "", ErrInvalidBlobSize
	}
	if blob[0] != secretVersion {
		return "", fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, blob[0])
	}

	plaintext, err := e.gcm.Open(nil, blob[1:1+nonceSize], blob[1+nonceSize:], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}
