package service

import "signer-core/pkg/bip32"

// KeyDeriver exposes public keys only; private material stays behind it.
type KeyDeriver interface {
	PublicKey(path bip32.Path) ([]byte, error)
}

// Signer signs a 32 byte digest with the key at path.
type Signer interface {
	Sign(path bip32.Path, digest []byte) ([]byte, error)
}
