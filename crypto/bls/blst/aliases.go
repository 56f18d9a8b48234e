package blst

import blst "github.com/supranational/blst/bindings/go"

// Internal types for blst.
type blstPublicKey = blst.P1Affine
type blstSignature = blst.P2Affine

func init() {
	// A payload carries a single signature.
	blst.SetMaxProcs(1)
}
