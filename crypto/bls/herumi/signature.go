package herumi

import (
	"github.com/herumi/bls-eth-go-binary/bls"
	"github.com/pkg/errors"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
	"github.com/ssvlabs/ssv-keys/crypto/bls/common"
)

// Signature used in the BLS signature scheme.
type Signature struct {
	s *bls.Sign
}

// SignatureFromBytes creates a BLS signature from a compressed byte slice.
func SignatureFromBytes(sig []byte) (common.Signature, error) {
	if len(sig) != fieldparams.BLSSignatureLength {
		return nil, errors.Errorf("signature must be %d bytes", fieldparams.BLSSignatureLength)
	}
	s := &bls.Sign{}
	if err := s.Deserialize(sig); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal bytes into signature")
	}
	return &Signature{s: s}, nil
}

// Verify a bls signature given a public key and a message.
func (s *Signature) Verify(pubKey common.PublicKey, msg []byte) bool {
	pk, ok := pubKey.(*PublicKey)
	if !ok {
		return false
	}
	return s.s.VerifyByte(pk.p, msg)
}

// Marshal a signature into its compressed byte form.
func (s *Signature) Marshal() []byte {
	return s.s.Serialize()
}
