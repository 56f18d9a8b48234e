// Package signing builds and signs the owner registration message
// "<checksummed owner address>:<register nonce>" with the validator key.
package signing

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/ssvlabs/ssv-keys/crypto/bls"
)

// Signer signs and verifies canonical messages.
type Signer interface {
	Sign(message string, secretKey bls.SecretKey) ([]byte, error)
	Verify(message string, signature, publicKey []byte) error
}

// ValidateRegisterNonce rejects negative nonces.
func ValidateRegisterNonce(nonce int64) error {
	if nonce < 0 {
		return &RegisterNonceFormatError{Nonce: nonce}
	}
	return nil
}

// BuildMessage validates the nonce, then the owner address, and returns the canonical message.
func BuildMessage(codec AddressCodec, ownerAddress string, registerNonce int64) (string, error) {
	if err := ValidateRegisterNonce(registerNonce); err != nil {
		return "", err
	}
	checksummed, err := codec.ToChecksumAddress(ownerAddress)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", checksummed, registerNonce), nil
}

// Service signs with herumi and verifies with blst over the keccak256 hash of the message.
type Service struct{}

var _ Signer = Service{}

// Sign returns the 96 byte signature over message.
func (Service) Sign(message string, secretKey bls.SecretKey) ([]byte, error) {
	if secretKey == nil {
		return nil, errors.New("nil secret key")
	}
	return secretKey.Sign(hashMessage(message)).Marshal(), nil
}

// Verify checks signature over message against publicKey.
func (Service) Verify(message string, signature, publicKey []byte) error {
	ok, err := bls.VerifySignature(signature, hashMessage(message), publicKey)
	if err != nil {
		return &SignatureVerificationError{Message: message, Err: err}
	}
	if !ok {
		return &SignatureVerificationError{Message: message}
	}
	return nil
}

func hashMessage(message string) []byte {
	return crypto.Keccak256([]byte(message))
}
