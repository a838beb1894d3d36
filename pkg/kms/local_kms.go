package kms

import (
	"fmt"
	"sync"

	"signer-core/pkg/bip32"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg"
)

// LocalKMS keeps only the BIP-39 seed in memory, standing in for the seed
// held by a secure element. Nothing derived from it is cached.
type LocalKMS struct {
	mu      sync.Mutex
	seed    []byte
	network *chaincfg.Params
}

// NewLocalKMS copies seed; the caller may wipe its own copy afterwards.
func NewLocalKMS(seed []byte, network *chaincfg.Params) (*LocalKMS, error) {
	// Fail early on a seed hdkeychain would reject.
	if _, err := bip32.NewMasterKeyFromSeed(seed, network); err != nil {
		return nil, err
	}
	owned := make([]byte, len(seed))
	copy(owned, seed)
	return &LocalKMS{seed: owned, network: network}, nil
}

// PublicKey implements KeyManager.
func (k *LocalKMS) PublicKey(path bip32.Path) ([]byte, error) {
	priv, err := k.derive(path)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()

	return priv.PubKey().SerializeUncompressed(), nil
}

// Sign implements KeyManager.
func (k *LocalKMS) Sign(path bip32.Path, digest []byte) ([]byte, error) {
	if len(digest) != 32 {
		return nil, ErrInvalidDigest
	}

	priv, err := k.derive(path)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()

	sig := ecdsa.Sign(priv, digest).Serialize()
	if len(sig) > MaxSignatureLength {
		return nil, fmt.Errorf("kms: signature length %d exceeds %d", len(sig), MaxSignatureLength)
	}
	return sig, nil
}

// Verify checks a DER signature against the key at path.
func (k *LocalKMS) Verify(path bip32.Path, digest, signature []byte) error {
	pubBytes, err := k.PublicKey(path)
	if err != nil {
		return err
	}
	pub, err := btcec.ParsePubKey(pubBytes)
	if err != nil {
		return err
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !sig.Verify(digest, pub) {
		return ErrInvalidSignature
	}
	return nil
}

// Close wipes the seed. Subsequent calls fail with ErrClosed.
func (k *LocalKMS) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.seed)
	k.seed = nil
}

func (k *LocalKMS) derive(path bip32.Path) (*btcec.PrivateKey, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.seed == nil {
		return nil, ErrClosed
	}

	wallet, err := bip32.NewMasterKeyFromSeed(k.seed, k.network)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivation, err)
	}
	key, err := wallet.DerivePath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDerivation, path, err)
	}
	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivation, err)
	}
	return priv, nil
}
