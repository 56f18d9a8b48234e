// Package bls implements a go-wrapper around a library implementing the
// BLS12-381 curve and signature scheme. Keys and signatures are produced
// through herumi; standalone verification goes through blst.
package bls

import (
	"github.com/ssvlabs/ssv-keys/crypto/bls/blst"
	"github.com/ssvlabs/ssv-keys/crypto/bls/common"
	"github.com/ssvlabs/ssv-keys/crypto/bls/herumi"
)

// SecretKey represents a BLS secret or private key.
type SecretKey = common.SecretKey

// PublicKey represents a BLS public key.
type PublicKey = common.PublicKey

// Signature represents a BLS signature.
type Signature = common.Signature

// SecretKeyFromBytes creates a BLS private key from a BigEndian byte slice.
func SecretKeyFromBytes(privKey []byte) (SecretKey, error) {
	return herumi.SecretKeyFromBytes(privKey)
}

// PublicKeyFromBytes creates a BLS public key from a compressed byte slice.
func PublicKeyFromBytes(pubKey []byte) (PublicKey, error) {
	return herumi.PublicKeyFromBytes(pubKey)
}

// SignatureFromBytes creates a BLS signature from a compressed byte slice.
func SignatureFromBytes(sig []byte) (Signature, error) {
	return herumi.SignatureFromBytes(sig)
}

// RandKey creates a new private key using a random input.
func RandKey() (SecretKey, error) {
	return herumi.RandKey()
}

// VerifySignature verifies a single signature over msg.
func VerifySignature(sig []byte, msg []byte, pubKey []byte) (bool, error) {
	return blst.VerifySignature(sig, msg, pubKey)
}
