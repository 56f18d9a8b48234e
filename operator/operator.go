// Package operator defines the distributed-validator operators a key is split for.
package operator

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Operator is a node holding one encrypted key share.
type Operator struct {
	ID        uint64 `json:"id"`
	PublicKey string `json:"publicKey"`
}

type operatorJSON struct {
	ID          uint64 `json:"id"`
	PublicKey   string `json:"publicKey,omitempty"`
	OperatorKey string `json:"operatorKey,omitempty"`
}

// UnmarshalJSON accepts the key under "publicKey" or the older "operatorKey".
func (o *Operator) UnmarshalJSON(b []byte) error {
	var raw operatorJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	o.ID = raw.ID
	o.PublicKey = raw.PublicKey
	if o.PublicKey == "" {
		o.PublicKey = raw.OperatorKey
	}
	return nil
}

// Sorted returns a copy of operators stable-sorted by id.
func Sorted(operators []Operator) []Operator {
	sorted := make([]Operator, len(operators))
	copy(sorted, operators)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// IDs returns the operator ids in the order given.
func IDs(operators []Operator) []uint64 {
	ids := make([]uint64, len(operators))
	for i, o := range operators {
		ids[i] = o.ID
	}
	return ids
}

// Validate reports every operator with a zero id, an empty key, or an id seen before.
func Validate(operators []Operator) error {
	var err error
	seen := make(map[uint64]bool, len(operators))
	for i, o := range operators {
		if o.ID == 0 {
			err = multierr.Append(err, errors.Errorf("operators[%d]: id must be a positive integer", i))
		}
		if o.PublicKey == "" {
			err = multierr.Append(err, errors.Errorf("operators[%d]: missing public key", i))
		}
		if o.ID != 0 && seen[o.ID] {
			err = multierr.Append(err, errors.Errorf("operators[%d]: duplicate id %d", i, o.ID))
		}
		seen[o.ID] = true
	}
	return err
}

// FromLists zips parallel id and key lists into operators.
func FromLists(ids []uint64, keys []string) ([]Operator, error) {
	if len(ids) != len(keys) {
		return nil, errors.Errorf("got %d operator ids and %d operator keys", len(ids), len(keys))
	}
	operators := make([]Operator, len(ids))
	for i := range ids {
		operators[i] = Operator{ID: ids[i], PublicKey: keys[i]}
	}
	return operators, nil
}
