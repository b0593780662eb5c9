package session

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// sealer encrypts session files at rest with a machine-local random key.
// Nonce is prepended to the ciphertext. This keeps a stolen state dir from
// leaking the bearer token; it is not a defense against an attacker who
// can also read the key file.
type sealer struct {
	aead cipher.AEAD
}

func newSealer(keyPath string) (*sealer, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil || len(key) != chacha20poly1305.KeySize {
		key = make([]byte, chacha20poly1305.KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
		if err := os.WriteFile(keyPath, key, 0o600); err != nil {
			return nil, fmt.Errorf("persist session key: %w", err)
		}
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &sealer{aead: aead}, nil
}

func (s *sealer) seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plain, nil), nil
}

func (s *sealer) open(blob []byte) ([]byte, bool) {
	ns := s.aead.NonceSize()
	if len(blob) < ns {
		return nil, false
	}
	plain, err := s.aead.Open(nil, blob[:ns], blob[ns:], nil)
	if err != nil {
		return nil, false
	}
	return plain, true
}
