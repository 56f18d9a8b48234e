// Package rsaencryption encrypts key shares under operator RSA public keys.
package rsaencryption

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
	"github.com/ssvlabs/ssv-keys/crypto/bls"
	"github.com/ssvlabs/ssv-keys/crypto/threshold"
	"github.com/ssvlabs/ssv-keys/operator"
	"golang.org/x/sync/errgroup"
)

// Padding selects the RSA encryption scheme.
type Padding int

const (
	// PKCS1v15 is the padding SSV nodes decrypt with.
	PKCS1v15 Padding = iota
	// OAEP uses SHA-256 for both the hash and the mask generation function.
	OAEP
)

func (p Padding) String() string {
	switch p {
	case PKCS1v15:
		return "pkcs1v15"
	case OAEP:
		return "oaep"
	default:
		return "unknown"
	}
}

// PaddingFromString parses a padding name as accepted on the command line.
func PaddingFromString(s string) (Padding, error) {
	switch strings.ToLower(s) {
	case "", "pkcs1v15":
		return PKCS1v15, nil
	case "oaep":
		return OAEP, nil
	default:
		return 0, errors.Errorf("unknown padding %q", s)
	}
}

// EncryptedShare is the serializable, encrypted counterpart of a threshold.Share.
type EncryptedShare struct {
	OperatorID        uint64 `json:"operatorId"`
	OperatorPublicKey string `json:"operatorPublicKey"`
	PublicKey         string `json:"publicKey"`
	PrivateKey        string `json:"privateKey"`
}

// Encryptor encrypts shares for their operators.
type Encryptor struct {
	padding Padding
	random  io.Reader
}

// Option configures an Encryptor.
type Option func(*Encryptor)

// WithPadding sets the RSA padding scheme.
func WithPadding(p Padding) Option {
	return func(e *Encryptor) {
		e.padding = p
	}
}

// WithRandom sets the entropy source used for padding. Shares are encrypted
// concurrently, so reads from r are serialized.
func WithRandom(r io.Reader) Option {
	return func(e *Encryptor) {
		e.random = &lockedReader{r: r}
	}
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

// New returns an Encryptor using PKCS#1 v1.5 padding unless configured otherwise.
func New(opts ...Option) *Encryptor {
	e := &Encryptor{
		padding: PKCS1v15,
		random:  rand.Reader,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Padding returns the configured padding scheme.
func (e *Encryptor) Padding() Padding {
	return e.padding
}

// EncryptShares encrypts each share under the key of the operator with the same id.
// Operators are processed concurrently and the result is ordered by operator id.
func (e *Encryptor) EncryptShares(shares []*threshold.Share, operators []operator.Operator) ([]*EncryptedShare, error) {
	if len(shares) != len(operators) {
		return nil, errors.Errorf("got %d shares for %d operators", len(shares), len(operators))
	}
	byID := make(map[uint64]*threshold.Share, len(shares))
	for _, s := range shares {
		byID[s.OperatorID] = s
	}
	sorted := operator.Sorted(operators)
	for _, op := range sorted {
		if _, ok := byID[op.ID]; !ok {
			return nil, errors.Errorf("no share for operator %d", op.ID)
		}
	}

	out := make([]*EncryptedShare, len(sorted))
	var g errgroup.Group
	for i, op := range sorted {
		i, op := i, op
		share := byID[op.ID]
		g.Go(func() error {
			enc, err := e.encryptShare(share, op)
			if err != nil {
				return err
			}
			out[i] = enc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Encryptor) encryptShare(share *threshold.Share, op operator.Operator) (*EncryptedShare, error) {
	pub, err := ParsePublicKey(op.PublicKey)
	if err != nil {
		return nil, &InvalidOperatorKeyError{OperatorID: op.ID, Err: err}
	}
	secret := share.SecretKey.Marshal()
	plaintext := []byte(fieldparams.HexPrefix + hex.EncodeToString(secret))
	defer zero(secret)
	defer zero(plaintext)

	var ciphertext []byte
	switch e.padding {
	case OAEP:
		ciphertext, err = rsa.EncryptOAEP(sha256.New(), e.random, pub, plaintext, nil)
	default:
		ciphertext, err = rsa.EncryptPKCS1v15(e.random, pub, plaintext)
	}
	if err != nil {
		return nil, &InvalidOperatorKeyError{OperatorID: op.ID, Err: errors.Wrap(err, "could not encrypt share")}
	}
	log.WithField("operatorId", op.ID).Debug("Encrypted share")
	return &EncryptedShare{
		OperatorID:        op.ID,
		OperatorPublicKey: base64.StdEncoding.EncodeToString([]byte(op.PublicKey)),
		PublicKey:         fieldparams.HexPrefix + hex.EncodeToString(share.PublicKey.Marshal()),
		PrivateKey:        base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// DecryptShare recovers the share secret from its base64 ciphertext.
func (e *Encryptor) DecryptShare(priv *rsa.PrivateKey, encrypted string) (bls.SecretKey, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode ciphertext")
	}
	var plaintext []byte
	switch e.padding {
	case OAEP:
		plaintext, err = rsa.DecryptOAEP(sha256.New(), e.random, priv, ciphertext, nil)
	default:
		plaintext, err = rsa.DecryptPKCS1v15(e.random, priv, ciphertext)
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not decrypt share")
	}
	defer zero(plaintext)
	secret, err := hex.DecodeString(strings.TrimPrefix(string(plaintext), fieldparams.HexPrefix))
	if err != nil {
		return nil, errors.Wrap(err, "decrypted share is not hex")
	}
	defer zero(secret)
	return bls.SecretKeyFromBytes(secret)
}

// CheckOperatorKeys reports the first operator whose key cannot be parsed.
func CheckOperatorKeys(operators []operator.Operator) error {
	for _, op := range operator.Sorted(operators) {
		if _, err := ParsePublicKey(op.PublicKey); err != nil {
			return &InvalidOperatorKeyError{OperatorID: op.ID, Err: err}
		}
	}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
