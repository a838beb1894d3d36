package address

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// ETHGenerator produces EIP-55 checksummed addresses.
type ETHGenerator struct{}

func NewETHGenerator() *ETHGenerator {
	return &ETHGenerator{}
}

// PubKeyToAddress expects the 65 byte uncompressed key (0x04 prefix).
func (g *ETHGenerator) PubKeyToAddress(pubKeyBytes []byte) (string, error) {
	pub, err := crypto.UnmarshalPubkey(pubKeyBytes)
	if err != nil {
		return "", fmt.Errorf("eth address: %w", err)
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}
