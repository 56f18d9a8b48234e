package blst

import (
	"github.com/pkg/errors"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
)

// dst is the domain separation tag of the proof-of-possession ciphersuite.
var dst = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

// VerifySignature checks a compressed signature over msg against a compressed public key.
// Malformed inputs return an error; a well formed signature that does not verify returns false.
func VerifySignature(sig []byte, msg []byte, pubKey []byte) (bool, error) {
	if len(pubKey) != fieldparams.BLSPubkeyLength {
		return false, errors.Errorf("public key must be %d bytes", fieldparams.BLSPubkeyLength)
	}
	if len(sig) != fieldparams.BLSSignatureLength {
		return false, errors.Errorf("signature must be %d bytes", fieldparams.BLSSignatureLength)
	}
	// Subgroup check done when decompressing pubkey.
	p := new(blstPublicKey).Uncompress(pubKey)
	if p == nil {
		return false, errors.New("could not unmarshal bytes into public key")
	}
	if !p.KeyValidate() {
		return false, errors.New("public key is not a valid group element")
	}
	s := new(blstSignature).Uncompress(sig)
	if s == nil {
		return false, errors.New("could not unmarshal bytes into signature")
	}
	// Signature group check is done during verification.
	return s.Verify(true, p, false, msg, dst), nil
}
