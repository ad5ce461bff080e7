// Package secrets implements encryption for database fields that must not
// be stored in plain text, e.g. the church tax identifier.
//
// Values are encrypted with AES-256-GCM and stored as base64. The key is
// derived from the SECRET_KEY environment variable, so the same database
// can only be read with the same configuration.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"os"
)

var (
	ErrKeyNotSet        = errors.New("the SECRET_KEY environment variable must be set")
	ErrPayloadCorrupted = errors.New("the encrypted value could not be decrypted")
)

// key derives a 32 byte AES key from SECRET_KEY.
func key() ([]byte, error) {
	secret, ok := os.LookupEnv("SECRET_KEY")
	if !ok || secret == "" {
		return nil, ErrKeyNotSet
	}

	sum := sha256.Sum256([]byte(secret))
	return sum[:], nil
}

func gcm() (cipher.AEAD, error) {
	k, err := key()
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

// Encrypt encrypts a plain text value for storage.
//
// The empty string encrypts to the empty string so that unset optional
// fields stay recognizably unset in the database.
func Encrypt(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}

	aead, err := gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt decrypts a value that was encrypted with Encrypt.
func Decrypt(encrypted string) (string, error) {
	if encrypted == "" {
		return "", nil
	}

	aead, err := gcm()
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", ErrPayloadCorrupted
	}

	if len(raw) < aead.NonceSize() {
		return "", ErrPayloadCorrupted
	}

	plain, err := aead.Open(nil, raw[:aead.NonceSize()], raw[aead.NonceSize():], nil)
	if err != nil {
		return "", ErrPayloadCorrupted
	}

	return string(plain), nil
}
