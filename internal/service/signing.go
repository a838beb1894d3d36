package service

import (
	"errors"
	"fmt"

	"signer-core/pkg/bip32"
	"signer-core/pkg/crypto_util"
	"signer-core/pkg/kms"
	"signer-core/pkg/monitor"
)

var (
	ErrDerivationFailed = errors.New("signing: key derivation failed")
	ErrSignFailed       = errors.New("signing: signature primitive failed")
)

// Signature is a DER encoded signature in a fixed buffer.
type Signature struct {
	buf [kms.MaxSignatureLength]byte
	n   int
}

// Bytes returns the effective signature bytes.
func (s *Signature) Bytes() []byte { return s.buf[:s.n] }

func (s *Signature) Len() int { return s.n }

// SigningService signs payloads the holder approved. It keeps no key
// material: every call goes back to the Signer.
type SigningService struct {
	signer Signer
	digest crypto_util.Digest
}

func NewSigningService(signer Signer, digest crypto_util.Digest) *SigningService {
	return &SigningService{signer: signer, digest: digest}
}

// Sign hashes payload exactly as given and signs the digest with the key at path.
func (s *SigningService) Sign(path bip32.Path, payload []byte) (Signature, error) {
	var sig Signature

	digest, err := s.digest.Sum(payload)
	if err != nil {
		return sig, fmt.Errorf("%w: %v", ErrSignFailed, err)
	}

	der, err := s.signer.Sign(path, digest[:])
	if err != nil {
		if errors.Is(err, kms.ErrDerivation) || errors.Is(err, kms.ErrClosed) {
			return sig, fmt.Errorf("%w: %v", ErrDerivationFailed, err)
		}
		return sig, fmt.Errorf("%w: %v", ErrSignFailed, err)
	}
	if len(der) == 0 || len(der) > len(sig.buf) {
		return sig, fmt.Errorf("%w: signature length %d", ErrSignFailed, len(der))
	}

	sig.n = copy(sig.buf[:], der)
	monitor.Business.SignaturesTotal.Inc()
	return sig, nil
}
