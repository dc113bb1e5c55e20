package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const vaultNonceSize = 24

var (
	ErrInvalidVaultKey = errors.New("ENCRYPTION_KEY must be 32 bytes of URL-safe base64")
	ErrCiphertext      = errors.New("card ciphertext cannot be decrypted")
)

// CardVault seals card numbers with XSalsa20-Poly1305. Ciphertexts are
// URL-safe base64 of nonce || box.
type CardVault struct {
	key [32]byte
}

// NewCardVault accepts the same key format as a Fernet key: 32 random bytes
// encoded as URL-safe base64, padded or not.
func NewCardVault(encodedKey string) (*CardVault, error) {
	raw, err := base64.URLEncoding.DecodeString(encodedKey)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(encodedKey)
	}
	if err != nil || len(raw) != 32 {
		return nil, ErrInvalidVaultKey
	}

	v := &CardVault{}
	copy(v.key[:], raw)
	return v, nil
}

func (v *CardVault) Encrypt(plaintext string) (string, error) {
	var nonce [vaultNonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("vault nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &v.key)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

func (v *CardVault) Decrypt(ciphertext string) (string, error) {
	sealed, err := base64.URLEncoding.DecodeString(ciphertext)
	if err != nil || len(sealed) < vaultNonceSize+secretbox.Overhead {
		return "", ErrCiphertext
	}
	var nonce [vaultNonceSize]byte
	copy(nonce[:], sealed[:vaultNonceSize])

	plain, ok := secretbox.Open(nil, sealed[vaultNonceSize:], &nonce, &v.key)
	if !ok {
		return "", ErrCiphertext
	}
	return string(plain), nil
}
