// Package keyshares holds the key shares document handed to the validator owner:
// the operators a key was split for and the signed registration payload.
package keyshares

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
	"github.com/ssvlabs/ssv-keys/operator"
	"github.com/ssvlabs/ssv-keys/signing"
	"go.uber.org/multierr"
)

// Data describes the validator and the operators holding its shares.
type Data struct {
	OwnerAddress string              `json:"ownerAddress,omitempty"`
	OwnerNonce   int64               `json:"ownerNonce"`
	PublicKey    string              `json:"publicKey"`
	Operators    []operator.Operator `json:"operators"`
}

// Payload is the registration payload submitted on chain.
type Payload struct {
	PublicKey   string   `json:"publicKey"`
	OperatorIDs []uint64 `json:"operatorIds"`
	SharesData  string   `json:"sharesData"`
}

// KeyShares is the persisted key shares document.
type KeyShares struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	Data      Data      `json:"data"`
	Payload   Payload   `json:"payload"`

	signer    signing.Signer
	addresses signing.AddressCodec
	now       func() time.Time
}

// Option configures a KeyShares document.
type Option func(*KeyShares)

// WithSigner replaces the signature service.
func WithSigner(s signing.Signer) Option {
	return func(ks *KeyShares) {
		ks.signer = s
	}
}

// WithAddressCodec replaces the owner address codec.
func WithAddressCodec(c signing.AddressCodec) Option {
	return func(ks *KeyShares) {
		ks.addresses = c
	}
}

// WithClock sets the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(ks *KeyShares) {
		ks.now = now
	}
}

// New returns an empty document of the current version.
func New(opts ...Option) *KeyShares {
	ks := &KeyShares{
		Version:   fieldparams.KeySharesVersion,
		signer:    signing.Service{},
		addresses: signing.EthAddressCodec{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(ks)
	}
	ks.CreatedAt = ks.now().UTC()
	return ks
}

// DataUpdate lists the data fields to replace. Empty strings, a nil nonce and
// an empty operator list leave the current value in place.
type DataUpdate struct {
	OwnerAddress string
	OwnerNonce   *int64
	PublicKey    string
	Operators    []operator.Operator
}

// Update validates the supplied fields and merges them into the document.
// Nothing is written when any supplied field is invalid. Operators are stored sorted by id.
func (ks *KeyShares) Update(u DataUpdate) error {
	var err error
	checksummed := u.OwnerAddress
	if u.OwnerAddress != "" {
		var addrErr error
		if checksummed, addrErr = ks.addresses.ToChecksumAddress(u.OwnerAddress); addrErr != nil {
			err = multierr.Append(err, errors.Wrap(addrErr, "data.ownerAddress"))
		}
	}
	if u.OwnerNonce != nil {
		if nonceErr := signing.ValidateRegisterNonce(*u.OwnerNonce); nonceErr != nil {
			err = multierr.Append(err, errors.Wrap(nonceErr, "data.ownerNonce"))
		}
	}
	if u.PublicKey != "" {
		err = multierr.Append(err, validatePublicKey("data.publicKey", u.PublicKey))
	}
	if len(u.Operators) > 0 {
		for _, opErr := range multierr.Errors(operator.Validate(u.Operators)) {
			err = multierr.Append(err, errors.Wrap(opErr, "data"))
		}
	}
	if err != nil {
		return err
	}

	if checksummed != "" {
		ks.Data.OwnerAddress = checksummed
	}
	if u.OwnerNonce != nil {
		ks.Data.OwnerNonce = *u.OwnerNonce
	}
	if u.PublicKey != "" {
		ks.Data.PublicKey = u.PublicKey
	}
	if len(u.Operators) > 0 {
		ks.Data.Operators = operator.Sorted(u.Operators)
	}
	return nil
}

// FromJSON reads a document written by ToJSON.
func FromJSON(b []byte, opts ...Option) (*KeyShares, error) {
	ks := New(opts...)
	if err := json.Unmarshal(b, ks); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal key shares")
	}
	if ks.Version == "" {
		ks.Version = fieldparams.KeySharesVersion
	}
	ks.Data.Operators = operator.Sorted(ks.Data.Operators)
	return ks, nil
}

// ToJSON stamps createdAt and serializes the document with two space indentation.
func (ks *KeyShares) ToJSON() ([]byte, error) {
	ks.CreatedAt = ks.now().UTC()
	b, err := json.MarshalIndent(ks, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal key shares")
	}
	return b, nil
}
