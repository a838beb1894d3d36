package bip32

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
)

// ExtendedKey wraps a BIP-32 extended key.
type ExtendedKey interface {
	// String returns the Base58 serialisation (xprv... / xpub...).
	String() string
	ECPubKey() (*btcec.PublicKey, error)
	// ECPrivKey returns the signing key. Callers must Zero it after use.
	ECPrivKey() (*btcec.PrivateKey, error)
	Derive(index uint32) (ExtendedKey, error)
	IsPrivate() bool
	Neuter() (ExtendedKey, error)
}

// HDWallet is a hierarchical deterministic wallet rooted at one master key.
type HDWallet interface {
	MasterKey() ExtendedKey
	DerivePath(path Path) (ExtendedKey, error)
}

var (
	ErrInvalidSeed = errors.New("bip32: invalid seed length")
	ErrInvalidPath = errors.New("bip32: invalid derivation path")
)
