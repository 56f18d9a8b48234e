package herumi

import (
	"github.com/herumi/bls-eth-go-binary/bls"
	"github.com/pkg/errors"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
	"github.com/ssvlabs/ssv-keys/crypto/bls/common"
)

// bls12SecretKey used in the BLS signature scheme.
type bls12SecretKey struct {
	p *bls.SecretKey
}

// RandKey creates a new private key using the library's CSPRNG.
func RandKey() (common.SecretKey, error) {
	secKey := &bls.SecretKey{}
	secKey.SetByCSPRNG()
	if secKey.IsZero() {
		return nil, common.ErrZeroKey
	}
	return &bls12SecretKey{p: secKey}, nil
}

// SecretKeyFromBytes creates a BLS private key from a BigEndian byte slice.
func SecretKeyFromBytes(privKey []byte) (common.SecretKey, error) {
	if len(privKey) != fieldparams.BLSSecretKeyLength {
		return nil, errors.Errorf("secret key must be %d bytes", fieldparams.BLSSecretKeyLength)
	}
	secKey := &bls.SecretKey{}
	if err := secKey.Deserialize(privKey); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal bytes into secret key")
	}
	if secKey.IsZero() {
		return nil, common.ErrZeroKey
	}
	return &bls12SecretKey{p: secKey}, nil
}

// PublicKey obtains the public key corresponding to the BLS secret key.
func (s *bls12SecretKey) PublicKey() common.PublicKey {
	return &PublicKey{p: s.p.GetPublicKey()}
}

// Sign a message using a secret key.
//
// In IETF draft BLS specification:
// Sign(SK, message) -> signature: a signing algorithm that generates
//      a deterministic signature given a secret key SK and a message.
//
// The proof-of-possession ciphersuite is selected by the ETH mode set in HerumiInit.
func (s *bls12SecretKey) Sign(msg []byte) common.Signature {
	return &Signature{s: s.p.SignByte(msg)}
}

// Marshal a secret key into a BigEndian byte slice.
func (s *bls12SecretKey) Marshal() []byte {
	keyBytes := s.p.Serialize()
	if len(keyBytes) < fieldparams.BLSSecretKeyLength {
		emptyBytes := make([]byte, fieldparams.BLSSecretKeyLength-len(keyBytes))
		keyBytes = append(emptyBytes, keyBytes...)
	}
	return keyBytes
}

// Zeroize overwrites the underlying scalar.
func (s *bls12SecretKey) Zeroize() {
	if s == nil || s.p == nil {
		return
	}
	*s.p = bls.SecretKey{}
}

func (s *bls12SecretKey) raw() bls.SecretKey {
	return *s.p
}
