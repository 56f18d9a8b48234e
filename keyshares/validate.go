package keyshares

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
	"github.com/ssvlabs/ssv-keys/encoding/sharesdata"
	"github.com/ssvlabs/ssv-keys/operator"
	"go.uber.org/multierr"
)

// Validate checks the document structure and reports every problem found.
func (ks *KeyShares) Validate() error {
	var err error
	if ks.Version == "" {
		err = multierr.Append(err, errors.New("version: missing"))
	}
	err = multierr.Append(err, ks.validateData())
	err = multierr.Append(err, ks.validatePayload())
	return err
}

func (ks *KeyShares) validateData() error {
	var err error
	err = multierr.Append(err, validatePublicKey("data.publicKey", ks.Data.PublicKey))
	if ks.Data.OwnerAddress != "" {
		if _, addrErr := ks.addresses.ToChecksumAddress(ks.Data.OwnerAddress); addrErr != nil {
			err = multierr.Append(err, errors.Wrap(addrErr, "data.ownerAddress"))
		}
	}
	if ks.Data.OwnerNonce < 0 {
		err = multierr.Append(err, errors.Errorf("data.ownerNonce: %d is negative", ks.Data.OwnerNonce))
	}
	if len(ks.Data.Operators) == 0 {
		return multierr.Append(err, errors.New("data.operators: missing"))
	}
	for _, opErr := range multierr.Errors(operator.Validate(ks.Data.Operators)) {
		err = multierr.Append(err, errors.Wrap(opErr, "data"))
	}
	return err
}

func (ks *KeyShares) validatePayload() error {
	var err error
	if ks.Payload.PublicKey == "" && ks.Payload.SharesData == "" && len(ks.Payload.OperatorIDs) == 0 {
		return errors.New("payload: missing")
	}
	err = multierr.Append(err, validatePublicKey("payload.publicKey", ks.Payload.PublicKey))
	if !strings.EqualFold(ks.Payload.PublicKey, ks.Data.PublicKey) {
		err = multierr.Append(err, errors.New("payload.publicKey: does not match data.publicKey"))
	}
	ids := operator.IDs(ks.Data.Operators)
	if !equalIDs(ids, ks.Payload.OperatorIDs) {
		err = multierr.Append(err, errors.Errorf("payload.operatorIds: %v do not match data.operators %v", ks.Payload.OperatorIDs, ids))
	}
	if ks.Payload.SharesData == "" {
		return multierr.Append(err, errors.New("payload.sharesData: missing"))
	}
	if len(ks.Data.Operators) > 0 {
		if _, unpackErr := sharesdata.Unpack(ks.Payload.SharesData, len(ks.Data.Operators)); unpackErr != nil {
			err = multierr.Append(err, errors.Wrap(unpackErr, "payload.sharesData"))
		}
	}
	return err
}

func validatePublicKey(field, publicKey string) error {
	if publicKey == "" {
		return errors.Errorf("%s: missing", field)
	}
	b, err := hexutil.Decode(publicKey)
	if err != nil {
		return errors.Wrap(err, field)
	}
	if len(b) != fieldparams.BLSPubkeyLength {
		return errors.Errorf("%s: length %d, expected %d", field, len(b), fieldparams.BLSPubkeyLength)
	}
	return nil
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
