package sealedconfig

import "errors"

var (
	ErrPassphraseRequired = errors.New("sealedconfig: passphrase is required")
	ErrEncryptionFailed   = errors.New("sealedconfig: encryption failed")
	ErrDecryptionFailed   = errors.New("sealedconfig: decryption failed")
	ErrInvalidCiphertext  = errors.New("sealedconfig: invalid ciphertext format")
	ErrKeyDerivation      = errors.New("sealedconfig: key derivation failed")
	ErrInvalidPayload     = errors.New("sealedconfig: invalid mail configuration")
)
