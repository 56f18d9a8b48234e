// Package ssvkeys runs the full pipeline from an encrypted validator keystore
// to a signed key shares document.
package ssvkeys

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
	"github.com/ssvlabs/ssv-keys/crypto/bls"
	"github.com/ssvlabs/ssv-keys/crypto/keystore"
	"github.com/ssvlabs/ssv-keys/crypto/rsaencryption"
	"github.com/ssvlabs/ssv-keys/crypto/threshold"
	"github.com/ssvlabs/ssv-keys/keyshares"
	"github.com/ssvlabs/ssv-keys/operator"
	"github.com/ssvlabs/ssv-keys/signing"
)

// SSVKeys wires the pipeline stages together.
type SSVKeys struct {
	encryptor *rsaencryption.Encryptor
	signer    signing.Signer
	addresses signing.AddressCodec
	docOpts   []keyshares.Option
}

// Option configures SSVKeys.
type Option func(*SSVKeys)

// WithEncryptor sets the share encryptor.
func WithEncryptor(e *rsaencryption.Encryptor) Option {
	return func(s *SSVKeys) {
		s.encryptor = e
	}
}

// WithSigner sets the signature service used for payloads.
func WithSigner(signer signing.Signer) Option {
	return func(s *SSVKeys) {
		s.signer = signer
	}
}

// WithAddressCodec sets the owner address codec.
func WithAddressCodec(c signing.AddressCodec) Option {
	return func(s *SSVKeys) {
		s.addresses = c
	}
}

// WithDocumentOptions passes extra options to every key shares document built.
func WithDocumentOptions(opts ...keyshares.Option) Option {
	return func(s *SSVKeys) {
		s.docOpts = append(s.docOpts, opts...)
	}
}

// New returns the pipeline with its default stages.
func New(opts ...Option) *SSVKeys {
	s := &SSVKeys{
		encryptor: rsaencryption.New(),
		signer:    signing.Service{},
		addresses: signing.EthAddressCodec{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractedKeys is a decrypted validator key. The caller owns SecretKey and must Zeroize it.
type ExtractedKeys struct {
	PublicKey string
	SecretKey bls.SecretKey
}

// Request is one key shares build.
type Request struct {
	KeystoreJSON  []byte
	Password      string
	Operators     []operator.Operator
	OwnerAddress  string
	RegisterNonce int64
}

// ExtractKeys decrypts a keystore.
func (s *SSVKeys) ExtractKeys(keystoreJSON []byte, password string) (*ExtractedKeys, error) {
	secretKey, err := keystore.Decrypt(keystoreJSON, password)
	if err != nil {
		return nil, err
	}
	return &ExtractedKeys{
		PublicKey: hexutil.Encode(secretKey.PublicKey().Marshal()),
		SecretKey: secretKey,
	}, nil
}

// BuildShares splits secretKey for the operators and encrypts every share.
// Share secrets are zeroized before returning.
func (s *SSVKeys) BuildShares(secretKey bls.SecretKey, operators []operator.Operator) ([]*rsaencryption.EncryptedShare, error) {
	if err := s.checkOperators(operators); err != nil {
		return nil, err
	}
	sorted := operator.Sorted(operators)
	res, err := threshold.SplitForOperators(secretKey, operator.IDs(sorted))
	if err != nil {
		return nil, err
	}
	defer threshold.Zeroize(res.Shares)
	return s.encryptor.EncryptShares(res.Shares, sorted)
}

// BuildKeyShares validates the request, decrypts the keystore, splits and encrypts
// the key, and returns a document holding a verified payload.
func (s *SSVKeys) BuildKeyShares(req Request) (*keyshares.KeyShares, error) {
	if _, err := signing.BuildMessage(s.addresses, req.OwnerAddress, req.RegisterNonce); err != nil {
		return nil, err
	}
	if err := s.checkOperators(req.Operators); err != nil {
		return nil, err
	}

	keys, err := s.ExtractKeys(req.KeystoreJSON, req.Password)
	if err != nil {
		return nil, err
	}
	defer keys.SecretKey.Zeroize()

	encrypted, err := s.BuildShares(keys.SecretKey, req.Operators)
	if err != nil {
		return nil, err
	}

	opts := append([]keyshares.Option{
		keyshares.WithSigner(s.signer),
		keyshares.WithAddressCodec(s.addresses),
	}, s.docOpts...)
	ks := keyshares.New(opts...)
	if _, err := ks.BuildPayload(keyshares.PayloadMetadata{
		PublicKey:       keys.PublicKey,
		Operators:       req.Operators,
		EncryptedShares: encrypted,
	}, keyshares.SignatureInputs{
		OwnerAddress:  req.OwnerAddress,
		RegisterNonce: req.RegisterNonce,
		SecretKey:     keys.SecretKey,
	}); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"publicKey": keys.PublicKey,
		"operators": len(req.Operators),
		"threshold": threshold.Threshold(len(req.Operators)),
	}).Info("Key shares ready")
	return ks, nil
}

func (s *SSVKeys) checkOperators(operators []operator.Operator) error {
	if len(operators) < fieldparams.MinClusterSize {
		return &threshold.InvalidOperatorCountError{Count: len(operators), Minimum: fieldparams.MinClusterSize}
	}
	if err := operator.Validate(operators); err != nil {
		return errors.Wrap(err, "invalid operators")
	}
	return rsaencryption.CheckOperatorKeys(operators)
}
