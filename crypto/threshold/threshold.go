// Package threshold splits a validator secret key into operator shares with
// Shamir secret sharing over the BLS12-381 scalar field.
package threshold

import (
	"github.com/sirupsen/logrus"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
	"github.com/ssvlabs/ssv-keys/crypto/bls"
	"github.com/ssvlabs/ssv-keys/crypto/bls/herumi"
)

// Share is one operator's piece of the validator key.
type Share struct {
	OperatorID uint64
	PublicKey  bls.PublicKey
	SecretKey  bls.SecretKey
}

// Result holds the unchanged validator public key and the shares, ordered as requested.
type Result struct {
	ValidatorPublicKey bls.PublicKey
	Shares             []*Share
}

// FaultTolerance returns the number of faulty operators a cluster of n tolerates.
func FaultTolerance(n int) int {
	if n < 1 {
		return 0
	}
	return (n - 1) / 3
}

// Threshold returns the number of shares needed to reconstruct the key for a cluster of n.
func Threshold(n int) int {
	return FaultTolerance(n) + 1
}

// Split shares secretKey among n operators at evaluation points 1..n.
func Split(secretKey bls.SecretKey, n int) (*Result, error) {
	if n < fieldparams.MinClusterSize {
		return nil, &InvalidOperatorCountError{Count: n, Minimum: fieldparams.MinClusterSize}
	}
	ids := make([]uint64, n)
	for i := range ids {
		ids[i] = uint64(i + 1)
	}
	return SplitForOperators(secretKey, ids)
}

// SplitForOperators shares secretKey using each operator id as its evaluation point.
// On failure no share is returned and every computed share is zeroized.
func SplitForOperators(secretKey bls.SecretKey, operatorIDs []uint64) (*Result, error) {
	n := len(operatorIDs)
	if n < fieldparams.MinClusterSize {
		return nil, &InvalidOperatorCountError{Count: n, Minimum: fieldparams.MinClusterSize}
	}
	if secretKey == nil {
		return nil, &ThresholdSchemeError{Reason: "nil secret key"}
	}
	seen := make(map[uint64]bool, n)
	for _, id := range operatorIDs {
		if id == 0 {
			return nil, &ThresholdSchemeError{Reason: "operator id 0 is not a valid evaluation point"}
		}
		if seen[id] {
			return nil, &ThresholdSchemeError{Reason: "duplicate operator id"}
		}
		seen[id] = true
	}

	t := Threshold(n)
	log.WithFields(logrus.Fields{
		"operators": n,
		"threshold": t,
	}).Debug("Splitting validator key")

	poly, err := herumi.NewPolynomial(secretKey, t-1)
	if err != nil {
		return nil, &ThresholdSchemeError{Reason: "could not build polynomial", Err: err}
	}
	defer poly.Zeroize()

	shares := make([]*Share, 0, n)
	for _, id := range operatorIDs {
		sk, err := poly.Evaluate(id)
		if err != nil {
			Zeroize(shares)
			return nil, &ThresholdSchemeError{Reason: "could not evaluate share", Err: err}
		}
		shares = append(shares, &Share{
			OperatorID: id,
			PublicKey:  sk.PublicKey(),
			SecretKey:  sk,
		})
	}
	return &Result{
		ValidatorPublicKey: secretKey.PublicKey(),
		Shares:             shares,
	}, nil
}

// Reconstruct interpolates the secret key at 0 from the given shares.
// It needs at least a threshold of shares to return the original key.
func Reconstruct(shares []*Share) (bls.SecretKey, error) {
	if len(shares) == 0 {
		return nil, &ThresholdSchemeError{Reason: "no shares"}
	}
	secrets := make([]bls.SecretKey, len(shares))
	points := make([]uint64, len(shares))
	for i, s := range shares {
		secrets[i] = s.SecretKey
		points[i] = s.OperatorID
	}
	sk, err := herumi.Recover(secrets, points)
	if err != nil {
		return nil, &ThresholdSchemeError{Reason: "could not reconstruct key", Err: err}
	}
	return sk, nil
}

// Zeroize overwrites every share secret.
func Zeroize(shares []*Share) {
	for _, s := range shares {
		if s != nil && s.SecretKey != nil {
			s.SecretKey.Zeroize()
		}
	}
}
