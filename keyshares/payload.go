package keyshares

import (
	"encoding/base64"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
	"github.com/ssvlabs/ssv-keys/crypto/bls"
	"github.com/ssvlabs/ssv-keys/crypto/rsaencryption"
	"github.com/ssvlabs/ssv-keys/encoding/sharesdata"
	"github.com/ssvlabs/ssv-keys/operator"
	"github.com/ssvlabs/ssv-keys/signing"
)

// PayloadMetadata is the unsigned content of a payload.
type PayloadMetadata struct {
	// PublicKey is the 0x prefixed validator public key. When empty it is derived from the secret key.
	PublicKey       string
	Operators       []operator.Operator
	EncryptedShares []*rsaencryption.EncryptedShare
}

// SignatureInputs carries what the owner signature is computed from.
type SignatureInputs struct {
	OwnerAddress  string
	RegisterNonce int64
	SecretKey     bls.SecretKey
}

// SignatureCheck identifies the signer of an existing payload.
type SignatureCheck struct {
	OwnerAddress  string
	RegisterNonce int64
	PublicKey     string
}

// Shares are the per-operator segments of a payload in operator order.
type Shares struct {
	PublicKeys    []string `json:"sharePublicKeys"`
	EncryptedKeys []string `json:"encryptedKeys"`
}

// BuildPayload packs, signs and self-verifies the registration payload and
// records it together with the operator data in the document.
func (ks *KeyShares) BuildPayload(meta PayloadMetadata, inputs SignatureInputs) (*Payload, error) {
	message, err := signing.BuildMessage(ks.addresses, inputs.OwnerAddress, inputs.RegisterNonce)
	if err != nil {
		return nil, err
	}
	if inputs.SecretKey == nil {
		return nil, errors.New("missing validator secret key")
	}
	operators := operator.Sorted(meta.Operators)
	if err := operator.Validate(operators); err != nil {
		return nil, err
	}
	publicKeys, encryptedKeys, err := shareSegments(operators, meta.EncryptedShares)
	if err != nil {
		return nil, err
	}

	validatorPubKey := inputs.SecretKey.PublicKey().Marshal()
	publicKey := hexutil.Encode(validatorPubKey)
	if meta.PublicKey != "" && !strings.EqualFold(meta.PublicKey, publicKey) {
		return nil, errors.Errorf("validator public key %s does not belong to the signing key", meta.PublicKey)
	}

	provisional, err := sharesdata.Pack(nil, publicKeys, encryptedKeys)
	if err != nil {
		return nil, err
	}
	signature, err := ks.signer.Sign(message, inputs.SecretKey)
	if err != nil {
		return nil, errors.Wrap(err, "could not sign payload")
	}
	signed, err := sharesdata.WithSignature(provisional, signature)
	if err != nil {
		return nil, err
	}
	embedded, err := sharesdata.SignatureFrom(signed)
	if err != nil {
		return nil, err
	}
	if err := ks.signer.Verify(message, embedded, validatorPubKey); err != nil {
		return nil, err
	}

	checksummed := message[:strings.LastIndex(message, ":")]
	ks.Payload = Payload{
		PublicKey:   publicKey,
		OperatorIDs: operator.IDs(operators),
		SharesData:  signed,
	}
	ks.Data.PublicKey = publicKey
	ks.Data.Operators = operators
	ks.Data.OwnerAddress = checksummed
	ks.Data.OwnerNonce = inputs.RegisterNonce
	log.WithFields(logrus.Fields{
		"publicKey":   publicKey,
		"operatorIds": ks.Payload.OperatorIDs,
		"owner":       checksummed,
		"nonce":       inputs.RegisterNonce,
	}).Info("Built key shares payload")
	payload := ks.Payload
	return &payload, nil
}

// ValidateSingleShares verifies the owner signature embedded in sharesData.
func (ks *KeyShares) ValidateSingleShares(sharesData string, check SignatureCheck) error {
	message, err := signing.BuildMessage(ks.addresses, check.OwnerAddress, check.RegisterNonce)
	if err != nil {
		return err
	}
	signature, err := sharesdata.SignatureFrom(sharesData)
	if err != nil {
		return err
	}
	publicKey, err := hexutil.Decode(check.PublicKey)
	if err != nil {
		return errors.Wrapf(err, "could not decode validator public key %q", check.PublicKey)
	}
	return ks.signer.Verify(message, signature, publicKey)
}

// BuildSharesFromBytes splits sharesData into 0x prefixed share public keys and base64 encrypted keys.
func BuildSharesFromBytes(sharesData string, operatorCount int) (*Shares, error) {
	unpacked, err := sharesdata.Unpack(sharesData, operatorCount)
	if err != nil {
		return nil, err
	}
	out := &Shares{
		PublicKeys:    make([]string, operatorCount),
		EncryptedKeys: make([]string, operatorCount),
	}
	for i := 0; i < operatorCount; i++ {
		out.PublicKeys[i] = hexutil.Encode(unpacked.PublicKeys[i])
		out.EncryptedKeys[i] = base64.StdEncoding.EncodeToString(unpacked.EncryptedKeys[i])
	}
	return out, nil
}

// shareSegments orders the encrypted shares by operator and decodes their byte segments.
func shareSegments(operators []operator.Operator, shares []*rsaencryption.EncryptedShare) ([][]byte, [][]byte, error) {
	if len(shares) != len(operators) {
		return nil, nil, errors.Errorf("got %d encrypted shares for %d operators", len(shares), len(operators))
	}
	byID := make(map[uint64]*rsaencryption.EncryptedShare, len(shares))
	for _, s := range shares {
		byID[s.OperatorID] = s
	}
	publicKeys := make([][]byte, len(operators))
	encryptedKeys := make([][]byte, len(operators))
	for i, op := range operators {
		share, ok := byID[op.ID]
		if !ok {
			return nil, nil, errors.Errorf("no encrypted share for operator %d", op.ID)
		}
		pk, err := hexutil.Decode(share.PublicKey)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not decode share public key of operator %d", op.ID)
		}
		if len(pk) != fieldparams.BLSPubkeyLength {
			return nil, nil, &sharesdata.PayloadFormatError{Segment: "public key", Expected: fieldparams.BLSPubkeyLength, Actual: len(pk)}
		}
		ek, err := base64.StdEncoding.DecodeString(share.PrivateKey)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not decode encrypted key of operator %d", op.ID)
		}
		publicKeys[i] = pk
		encryptedKeys[i] = ek
	}
	return publicKeys, encryptedKeys, nil
}
