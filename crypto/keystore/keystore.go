// Package keystore decrypts EIP-2335 validator keystores into BLS secret keys.
package keystore

import (
	"crypto/aes"
	"encoding/hex"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
	"github.com/ssvlabs/ssv-keys/crypto/bls"
	keystorev4 "github.com/wealdtech/go-eth2-wallet-encryptor-keystorev4"
)

var (
	supportedKDFs      = map[string]bool{"scrypt": true, "pbkdf2": true}
	supportedChecksums = map[string]bool{"sha256": true}
	supportedCiphers   = map[string]bool{"aes-128-ctr": true}
)

// minDerivedKeyLength covers the cipher key and the checksum half of the derived key.
const minDerivedKeyLength = 32

// Keystore json file representation as a Go struct.
type Keystore struct {
	Crypto  map[string]interface{} `json:"crypto"`
	ID      string                 `json:"uuid,omitempty"`
	Pubkey  string                 `json:"pubkey,omitempty"`
	Version uint                   `json:"version,omitempty"`
	Path    string                 `json:"path,omitempty"`
	Name    string                 `json:"name,omitempty"`
}

// Parse unmarshals a keystore document and checks its structure.
func Parse(keystoreJSON []byte) (*Keystore, error) {
	ks := &Keystore{}
	if err := json.Unmarshal(keystoreJSON, ks); err != nil {
		return nil, &KeystoreFormatError{Field: "crypto", Reason: "is not valid json: " + err.Error()}
	}
	if err := ks.Validate(); err != nil {
		return nil, err
	}
	return ks, nil
}

// Validate checks the presence and shape of every field the decryptor needs
// and rejects identifiers it cannot handle.
func (ks *Keystore) Validate() error {
	if ks.Crypto == nil {
		return &KeystoreFormatError{Field: "crypto"}
	}
	if ks.Version != 0 && ks.Version != fieldparams.KeystoreVersion {
		return &UnsupportedKeystoreVersionError{Field: "version", Value: strconv.FormatUint(uint64(ks.Version), 10)}
	}
	modules := []struct {
		name      string
		supported map[string]bool
		params    bool
		message   bool
	}{
		{name: "kdf", supported: supportedKDFs, params: true},
		{name: "checksum", supported: supportedChecksums, message: true},
		{name: "cipher", supported: supportedCiphers, params: true, message: true},
	}
	for _, m := range modules {
		raw, ok := ks.Crypto[m.name]
		if !ok {
			return &KeystoreFormatError{Field: "crypto." + m.name}
		}
		module, ok := raw.(map[string]interface{})
		if !ok {
			return &KeystoreFormatError{Field: "crypto." + m.name, Reason: "is not an object"}
		}
		function, err := stringField(module, "crypto."+m.name, "function")
		if err != nil {
			return err
		}
		if !m.supported[function] {
			return &UnsupportedKeystoreVersionError{Field: m.name + " function", Value: function}
		}
		if m.message {
			if _, err := hexField(module, "crypto."+m.name, "message", 0); err != nil {
				return err
			}
		}
		if m.params {
			params, ok := module["params"].(map[string]interface{})
			if !ok {
				return &KeystoreFormatError{Field: "crypto." + m.name + ".params"}
			}
			if err := validateParams(function, "crypto."+m.name+".params", params); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateParams checks the parameters each supported function reads.
func validateParams(function, path string, params map[string]interface{}) error {
	switch function {
	case "scrypt", "pbkdf2":
		dkLen, err := intField(params, path, "dklen")
		if err != nil {
			return err
		}
		if dkLen < minDerivedKeyLength {
			return &KeystoreFormatError{Field: path + ".dklen", Reason: "must be at least " + strconv.Itoa(minDerivedKeyLength)}
		}
		names := []string{"n", "r", "p"}
		if function == "pbkdf2" {
			names = []string{"c"}
			prf, err := stringField(params, path, "prf")
			if err != nil {
				return err
			}
			if prf != "hmac-sha256" {
				return &UnsupportedKeystoreVersionError{Field: "pbkdf2 prf", Value: prf}
			}
		}
		for _, name := range names {
			if _, err := intField(params, path, name); err != nil {
				return err
			}
		}
		if _, err := hexField(params, path, "salt", 0); err != nil {
			return err
		}
	case "aes-128-ctr":
		if _, err := hexField(params, path, "iv", aes.BlockSize); err != nil {
			return err
		}
	}
	return nil
}

// Decrypt recovers the secret key held by the keystore.
// Any failure after structural validation is reported as a DecryptionError.
func (ks *Keystore) Decrypt(password string) (bls.SecretKey, error) {
	if err := ks.Validate(); err != nil {
		return nil, err
	}
	decryptor := keystorev4.New()
	privKeyBytes, err := decryptor.Decrypt(ks.Crypto, password)
	if err != nil {
		log.WithError(err).Debug("Keystore decryption failed")
		return nil, &DecryptionError{}
	}
	defer zero(privKeyBytes)
	secretKey, err := bls.SecretKeyFromBytes(privKeyBytes)
	if err != nil {
		log.WithError(err).Debug("Decrypted bytes are not a valid secret key")
		return nil, &DecryptionError{}
	}
	ks.checkPubkey(secretKey)
	return secretKey, nil
}

// Decrypt parses keystoreJSON and decrypts it with password.
func Decrypt(keystoreJSON []byte, password string) (bls.SecretKey, error) {
	ks, err := Parse(keystoreJSON)
	if err != nil {
		return nil, err
	}
	return ks.Decrypt(password)
}

// Encrypt produces a version 4 keystore for secretKey under password.
func Encrypt(secretKey bls.SecretKey, password string) (*Keystore, error) {
	encryptor := keystorev4.New()
	secret := secretKey.Marshal()
	defer zero(secret)
	cryptoFields, err := encryptor.Encrypt(secret, password)
	if err != nil {
		return nil, errors.Wrap(err, "could not encrypt secret key")
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "could not generate keystore id")
	}
	return &Keystore{
		Crypto:  cryptoFields,
		ID:      id.String(),
		Pubkey:  hex.EncodeToString(secretKey.PublicKey().Marshal()),
		Version: encryptor.Version(),
		Name:    encryptor.Name(),
	}, nil
}

// checkPubkey warns when the advisory pubkey field does not belong to the decrypted key.
func (ks *Keystore) checkPubkey(secretKey bls.SecretKey) {
	if ks.Pubkey == "" {
		return
	}
	derived := hex.EncodeToString(secretKey.PublicKey().Marshal())
	if !strings.EqualFold(strings.TrimPrefix(ks.Pubkey, fieldparams.HexPrefix), derived) {
		log.WithFields(logrus.Fields{
			"keystorePubkey": ks.Pubkey,
			"derivedPubkey":  fieldparams.HexPrefix + derived,
		}).Warn("Keystore public key does not match the decrypted secret key")
	}
}

func stringField(module map[string]interface{}, path, name string) (string, error) {
	raw, ok := module[name]
	if !ok {
		return "", &KeystoreFormatError{Field: path + "." + name}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &KeystoreFormatError{Field: path + "." + name, Reason: "is not a string"}
	}
	return s, nil
}

// intField reads a positive integer. JSON numbers arrive as float64.
func intField(module map[string]interface{}, path, name string) (int, error) {
	raw, ok := module[name]
	if !ok {
		return 0, &KeystoreFormatError{Field: path + "." + name}
	}
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, &KeystoreFormatError{Field: path + "." + name, Reason: "is not a positive integer"}
	}
	return int(f), nil
}

// hexField reads an unprefixed hex string. A non-zero size also fixes its decoded length.
func hexField(module map[string]interface{}, path, name string, size int) ([]byte, error) {
	s, err := stringField(module, path, name)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &KeystoreFormatError{Field: path + "." + name, Reason: "is not valid hex"}
	}
	if size > 0 && len(b) != size {
		return nil, &KeystoreFormatError{Field: path + "." + name, Reason: "must be " + strconv.Itoa(size) + " bytes"}
	}
	return b, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
