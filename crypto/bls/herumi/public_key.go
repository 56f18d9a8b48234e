package herumi

import (
	"github.com/herumi/bls-eth-go-binary/bls"
	"github.com/pkg/errors"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
	"github.com/ssvlabs/ssv-keys/crypto/bls/common"
)

// PublicKey used in the BLS signature scheme.
type PublicKey struct {
	p *bls.PublicKey
}

// PublicKeyFromBytes creates a BLS public key from a compressed byte slice.
func PublicKeyFromBytes(pubKey []byte) (common.PublicKey, error) {
	if len(pubKey) != fieldparams.BLSPubkeyLength {
		return nil, errors.Errorf("public key must be %d bytes", fieldparams.BLSPubkeyLength)
	}
	p := &bls.PublicKey{}
	// Subgroup check done when deserializing pubkey.
	if err := p.Deserialize(pubKey); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal bytes into public key")
	}
	if p.IsZero() {
		return nil, common.ErrInfinitePubKey
	}
	return &PublicKey{p: p}, nil
}

// Marshal a public key into its compressed byte form.
func (p *PublicKey) Marshal() []byte {
	return p.p.Serialize()
}

// Copy the public key to a new pointer reference.
func (p *PublicKey) Copy() common.PublicKey {
	np := *p.p
	return &PublicKey{p: &np}
}

// Equals checks if the provided public key is equal to
// the current one.
func (p *PublicKey) Equals(p2 common.PublicKey) bool {
	other, ok := p2.(*PublicKey)
	if !ok {
		return false
	}
	return p.p.IsEqual(other.p)
}
