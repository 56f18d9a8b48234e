package common

import fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"

// ZeroSecretKey represents a zero secret key.
var ZeroSecretKey = [fieldparams.BLSSecretKeyLength]byte{}

// InfinitePublicKey represents an infinite public key (G1 Point at Infinity).
var InfinitePublicKey = [fieldparams.BLSPubkeyLength]byte{0xC0}

// InfiniteSignature represents an infinite signature (G2 Point at Infinity).
var InfiniteSignature = [fieldparams.BLSSignatureLength]byte{0xC0}
