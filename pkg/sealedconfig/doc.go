// Package sealedconfig encrypts the relay's mail account settings so they can
// be stored next to the code.
//
// Values are sealed with AES-256-GCM under a key derived from a passphrase
// (ENCRYPTION_KEY) with scrypt and a random salt. The sealed form is
// "v1:" followed by base64(salt | nonce | ciphertext). WriteFile and ReadFile
// wrap a MailConfig in a small commented text file; the relay reads it at
// startup when EMAIL_SEALED_CONFIG points at one.
package sealedconfig
