package address

// Generator turns a secp256k1 public key into a chain address.
type Generator interface {
	PubKeyToAddress(pubKeyBytes []byte) (string, error)
}
