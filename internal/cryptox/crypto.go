// Package cryptox implements the text encryption used for sensitive journal
// fields. Keys are derived from a caregiver passphrase with argon2id and the
// payload is sealed with AES-256-GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/distincto/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the random salt fed to DeriveMasterKey.
const SaltSize = 16

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// Encrypter turns plaintext into an opaque printable ciphertext and back.
type Encrypter interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// MakeVerifier returns a value that can be stored to check a passphrase
// later without keeping the key itself.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// Cipher is an AES-GCM Encrypter. The zero value is not usable.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a 16, 24 or 32 byte key.
func NewCipher(key []byte) (*Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext and returns base64(nonce || ciphertext).
// The empty string encrypts to the empty string so blank notes stay blank.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := common.GenerateRandByteArray(c.aead.NonceSize())
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	ns := c.aead.NonceSize()
	if len(raw) < ns {
		return "", ErrMalformedCiphertext
	}
	plaintext, err := c.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
