package herumi

import (
	"strconv"

	"github.com/herumi/bls-eth-go-binary/bls"
	"github.com/pkg/errors"
	"github.com/ssvlabs/ssv-keys/crypto/bls/common"
)

// Polynomial is a secret polynomial over the BLS scalar field. The constant
// term is the shared secret.
type Polynomial struct {
	coeffs []bls.SecretKey
}

// NewPolynomial builds a random polynomial of the given degree whose constant term is secret.
func NewPolynomial(secret common.SecretKey, degree int) (*Polynomial, error) {
	sk, ok := secret.(*bls12SecretKey)
	if !ok {
		return nil, errors.New("unsupported secret key implementation")
	}
	if degree < 0 {
		return nil, errors.Errorf("invalid polynomial degree %d", degree)
	}
	coeffs := make([]bls.SecretKey, degree+1)
	coeffs[0] = sk.raw()
	for i := 1; i <= degree; i++ {
		coeffs[i].SetByCSPRNG()
	}
	return &Polynomial{coeffs: coeffs}, nil
}

// Evaluate returns the polynomial evaluated at the given non-zero point.
func (p *Polynomial) Evaluate(x uint64) (common.SecretKey, error) {
	if x == 0 {
		return nil, errors.New("evaluation point must be non-zero")
	}
	id, err := toID(x)
	if err != nil {
		return nil, err
	}
	share := &bls.SecretKey{}
	if err := share.Set(p.coeffs, id); err != nil {
		return nil, errors.Wrapf(err, "could not evaluate polynomial at %d", x)
	}
	return &bls12SecretKey{p: share}, nil
}

// Zeroize overwrites every coefficient.
func (p *Polynomial) Zeroize() {
	for i := range p.coeffs {
		p.coeffs[i] = bls.SecretKey{}
	}
}

// Recover interpolates the secret from shares evaluated at the given points.
func Recover(shares []common.SecretKey, points []uint64) (common.SecretKey, error) {
	if len(shares) != len(points) {
		return nil, errors.Errorf("got %d shares for %d points", len(shares), len(points))
	}
	if len(shares) == 0 {
		return nil, errors.New("no shares to recover from")
	}
	secVec := make([]bls.SecretKey, len(shares))
	idVec := make([]bls.ID, len(points))
	for i, s := range shares {
		sk, ok := s.(*bls12SecretKey)
		if !ok {
			return nil, errors.New("unsupported secret key implementation")
		}
		secVec[i] = sk.raw()
		id, err := toID(points[i])
		if err != nil {
			return nil, err
		}
		idVec[i] = *id
	}
	recovered := &bls.SecretKey{}
	if err := recovered.Recover(secVec, idVec); err != nil {
		return nil, errors.Wrap(err, "could not recover secret")
	}
	for i := range secVec {
		secVec[i] = bls.SecretKey{}
	}
	return &bls12SecretKey{p: recovered}, nil
}

func toID(x uint64) (*bls.ID, error) {
	id := &bls.ID{}
	if err := id.SetDecString(strconv.FormatUint(x, 10)); err != nil {
		return nil, errors.Wrapf(err, "could not set id %d", x)
	}
	return id, nil
}
