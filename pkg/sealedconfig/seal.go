package sealedconfig

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	// Prefix marks the format version of a sealed value.
	Prefix = "v1:"

	saltSize = 16
	keySize  = 32

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// Seal encrypts plaintext with a key derived from passphrase and returns
// Prefix followed by base64(salt | nonce | ciphertext).
func Seal(passphrase string, plaintext []byte) (string, error) {
	if passphrase == "" {
		return "", ErrPassphraseRequired
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, []byte(Prefix))

	return Prefix + base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func Open(passphrase, sealed string) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrPassphraseRequired
	}

	encoded, ok := strings.CutPrefix(strings.TrimSpace(sealed), Prefix)
	if !ok {
		return nil, ErrInvalidCiphertext
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Join(ErrInvalidCiphertext, err)
	}
	if len(raw) < saltSize {
		return nil, ErrInvalidCiphertext
	}

	gcm, err := newGCM(passphrase, raw[:saltSize])
	if err != nil {
		return nil, err
	}

	rest := raw[saltSize:]
	if len(rest) < gcm.NonceSize()+gcm.Overhead() {
		return nil, ErrInvalidCiphertext
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, []byte(Prefix))
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivation, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return gcm, nil
}
