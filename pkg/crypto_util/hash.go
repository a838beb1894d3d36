package crypto_util

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// DigestLength is the output size of every supported digest.
const DigestLength = 32

// Digest names a 32 byte message digest used ahead of ECDSA signing.
type Digest string

const (
	SHA256    Digest = "sha256"
	Keccak256 Digest = "keccak256" // Ethereum's legacy Keccak, not NIST SHA3
	Blake3    Digest = "blake3"
)

// ParseDigest validates a configured digest name.
func ParseDigest(name string) (Digest, error) {
	switch d := Digest(name); d {
	case SHA256, Keccak256, Blake3:
		return d, nil
	case "":
		return SHA256, nil
	default:
		return "", fmt.Errorf("crypto_util: unsupported digest %q", name)
	}
}

// Sum hashes data into a fixed array.
func (d Digest) Sum(data []byte) ([DigestLength]byte, error) {
	switch d {
	case SHA256:
		return sha256.Sum256(data), nil
	case Keccak256:
		var out [DigestLength]byte
		h := sha3.NewLegacyKeccak256()
		h.Write(data)
		h.Sum(out[:0])
		return out, nil
	case Blake3:
		return blake3.Sum256(data), nil
	default:
		return [DigestLength]byte{}, fmt.Errorf("crypto_util: unsupported digest %q", string(d))
	}
}
