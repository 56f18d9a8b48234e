// Package sharesdata packs and unpacks the registration payload bytes:
//
//	signature (96) | share public keys (48 each) | encrypted share keys (equal length each)
package sharesdata

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
)

// SharesData is the decoded form of a payload's sharesData field.
type SharesData struct {
	Signature     []byte
	PublicKeys    [][]byte
	EncryptedKeys [][]byte
}

// Bytes concatenates the segments. A nil signature is written as zeroes.
func (s *SharesData) Bytes() ([]byte, error) {
	sig := s.Signature
	if sig == nil {
		sig = make([]byte, fieldparams.BLSSignatureLength)
	}
	if len(sig) != fieldparams.BLSSignatureLength {
		return nil, &PayloadFormatError{Segment: "signature", Expected: fieldparams.BLSSignatureLength, Actual: len(sig)}
	}
	if len(s.PublicKeys) == 0 {
		return nil, &PayloadFormatError{Segment: "public keys", Reason: "no operators"}
	}
	if len(s.PublicKeys) != len(s.EncryptedKeys) {
		return nil, &PayloadFormatError{Segment: "encrypted keys", Expected: len(s.PublicKeys), Actual: len(s.EncryptedKeys), Reason: "count does not match public key count"}
	}
	encLen := len(s.EncryptedKeys[0])
	if encLen == 0 {
		return nil, &PayloadFormatError{Segment: "encrypted key 0", Reason: "empty"}
	}
	out := make([]byte, 0, len(sig)+len(s.PublicKeys)*(fieldparams.BLSPubkeyLength+encLen))
	out = append(out, sig...)
	for _, pk := range s.PublicKeys {
		if len(pk) != fieldparams.BLSPubkeyLength {
			return nil, &PayloadFormatError{Segment: "public key", Expected: fieldparams.BLSPubkeyLength, Actual: len(pk)}
		}
		out = append(out, pk...)
	}
	for _, ek := range s.EncryptedKeys {
		if len(ek) != encLen {
			return nil, &PayloadFormatError{Segment: "encrypted key", Expected: encLen, Actual: len(ek)}
		}
		out = append(out, ek...)
	}
	return out, nil
}

// Pack concatenates the segments in the given order and hex encodes them with a 0x prefix.
func Pack(signature []byte, publicKeys, encryptedKeys [][]byte) (string, error) {
	b, err := (&SharesData{
		Signature:     signature,
		PublicKeys:    publicKeys,
		EncryptedKeys: encryptedKeys,
	}).Bytes()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(b), nil
}

// Unpack splits a hex encoded shares data string for operatorCount operators.
func Unpack(sharesData string, operatorCount int) (*SharesData, error) {
	if operatorCount < 1 {
		return nil, &PayloadFormatError{Segment: "operator count", Reason: "must be positive"}
	}
	b, err := decode(sharesData)
	if err != nil {
		return nil, err
	}
	pkEnd := fieldparams.BLSSignatureLength + operatorCount*fieldparams.BLSPubkeyLength
	if len(b) <= pkEnd {
		return nil, &PayloadFormatError{Segment: "shares data", Expected: pkEnd + operatorCount, Actual: len(b), Reason: "too short for signature, public keys and encrypted keys"}
	}
	rest := len(b) - pkEnd
	if rest%operatorCount != 0 {
		return nil, &PayloadFormatError{Segment: "encrypted keys", Expected: rest - rest%operatorCount, Actual: rest, Reason: "length does not divide evenly by operator count"}
	}
	encLen := rest / operatorCount

	out := &SharesData{
		Signature:     copyBytes(b[:fieldparams.BLSSignatureLength]),
		PublicKeys:    make([][]byte, operatorCount),
		EncryptedKeys: make([][]byte, operatorCount),
	}
	for i := 0; i < operatorCount; i++ {
		start := fieldparams.BLSSignatureLength + i*fieldparams.BLSPubkeyLength
		out.PublicKeys[i] = copyBytes(b[start : start+fieldparams.BLSPubkeyLength])
		start = pkEnd + i*encLen
		out.EncryptedKeys[i] = copyBytes(b[start : start+encLen])
	}
	return out, nil
}

// WithSignature returns sharesData with its signature segment replaced.
func WithSignature(sharesData string, signature []byte) (string, error) {
	if len(signature) != fieldparams.BLSSignatureLength {
		return "", &PayloadFormatError{Segment: "signature", Expected: fieldparams.BLSSignatureLength, Actual: len(signature)}
	}
	b, err := decode(sharesData)
	if err != nil {
		return "", err
	}
	if len(b) < fieldparams.BLSSignatureLength {
		return "", &PayloadFormatError{Segment: "shares data", Expected: fieldparams.BLSSignatureLength, Actual: len(b), Reason: "too short for signature"}
	}
	copy(b, signature)
	return hexutil.Encode(b), nil
}

// SignatureFrom returns the signature segment of sharesData.
func SignatureFrom(sharesData string) ([]byte, error) {
	b, err := decode(sharesData)
	if err != nil {
		return nil, err
	}
	if len(b) < fieldparams.BLSSignatureLength {
		return nil, &PayloadFormatError{Segment: "shares data", Expected: fieldparams.BLSSignatureLength, Actual: len(b), Reason: "too short for signature"}
	}
	return copyBytes(b[:fieldparams.BLSSignatureLength]), nil
}

func decode(sharesData string) ([]byte, error) {
	b, err := hexutil.Decode(sharesData)
	if err != nil {
		return nil, &PayloadFormatError{Segment: "shares data", Reason: err.Error()}
	}
	return b, nil
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
