package kms

import (
	"errors"

	"signer-core/pkg/bip32"
)

// MaxSignatureLength bounds a DER encoded secp256k1 signature.
const MaxSignatureLength = 72

// KeyManager is the device's secure element boundary. Private keys never
// leave it; every call derives from the seed again and discards the key.
type KeyManager interface {
	// PublicKey returns the 65 byte uncompressed secp256k1 key at path.
	PublicKey(path bip32.Path) ([]byte, error)

	// Sign produces a deterministic (RFC 6979) DER signature over a
	// 32 byte digest with the key at path.
	Sign(path bip32.Path, digest []byte) ([]byte, error)
}

var (
	ErrDerivation       = errors.New("kms: key derivation failed")
	ErrInvalidDigest    = errors.New("kms: digest must be 32 bytes")
	ErrClosed           = errors.New("kms: key manager closed")
	ErrInvalidSignature = errors.New("kms: invalid signature")
)
