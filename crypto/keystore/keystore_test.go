package keystore

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/ssvlabs/ssv-keys/crypto/bls"
	"github.com/ssvlabs/ssv-keys/testing/assert"
	"github.com/ssvlabs/ssv-keys/testing/require"
	keystorev4 "github.com/wealdtech/go-eth2-wallet-encryptor-keystorev4"
)

const password = "testpassword"

func encryptedKeystore(t *testing.T) (bls.SecretKey, []byte) {
	secretKey, err := bls.RandKey()
	require.NoError(t, err)
	ks, err := Encrypt(secretKey, password)
	require.NoError(t, err)
	enc, err := json.Marshal(ks)
	require.NoError(t, err)
	return secretKey, enc
}

func TestDecrypt_OK(t *testing.T) {
	hook := test.NewGlobal()
	secretKey, enc := encryptedKeystore(t)

	decrypted, err := Decrypt(enc, password)
	require.NoError(t, err)
	assert.DeepEqual(t, secretKey.Marshal(), decrypted.Marshal())
	require.LogsDoNotContain(t, hook, "does not match")
	require.LogsDoNotContain(t, hook, hex.EncodeToString(secretKey.Marshal()))
}

func TestDecrypt_WrongPassword(t *testing.T) {
	hook := test.NewGlobal()
	_, enc := encryptedKeystore(t)

	decrypted, err := Decrypt(enc, "wrongpassword")
	assert.Equal(t, nil, decrypted)
	var decErr *DecryptionError
	require.ErrorAs(t, err, &decErr)
	require.LogsDoNotContain(t, hook, "wrongpassword")
}

func TestDecrypt_PubkeyMismatchWarns(t *testing.T) {
	hook := test.NewGlobal()
	secretKey, err := bls.RandKey()
	require.NoError(t, err)
	other, err := bls.RandKey()
	require.NoError(t, err)
	ks, err := Encrypt(secretKey, password)
	require.NoError(t, err)
	ks.Pubkey = hex.EncodeToString(other.PublicKey().Marshal())

	decrypted, err := ks.Decrypt(password)
	require.NoError(t, err)
	assert.DeepEqual(t, secretKey.Marshal(), decrypted.Marshal())
	require.LogsContain(t, hook, "Keystore public key does not match the decrypted secret key")
}

func kdfParams(doc map[string]interface{}) map[string]interface{} {
	return doc["crypto"].(map[string]interface{})["kdf"].(map[string]interface{})["params"].(map[string]interface{})
}

func cipherParams(doc map[string]interface{}) map[string]interface{} {
	return doc["crypto"].(map[string]interface{})["cipher"].(map[string]interface{})["params"].(map[string]interface{})
}

func mutated(t *testing.T, enc []byte, mutate func(doc map[string]interface{})) []byte {
	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(enc, &doc))
	mutate(doc)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func TestParse_Errors(t *testing.T) {
	_, enc := encryptedKeystore(t)

	tests := []struct {
		name        string
		mutate      func(doc map[string]interface{})
		raw         string
		formatField string
		unsupported string
	}{
		{
			name:        "not json",
			raw:         "{",
			formatField: "crypto",
		},
		{
			name:        "missing crypto",
			mutate:      func(doc map[string]interface{}) { delete(doc, "crypto") },
			formatField: "crypto",
		},
		{
			name: "missing kdf",
			mutate: func(doc map[string]interface{}) {
				delete(doc["crypto"].(map[string]interface{}), "kdf")
			},
			formatField: "crypto.kdf",
		},
		{
			name: "missing cipher message",
			mutate: func(doc map[string]interface{}) {
				delete(doc["crypto"].(map[string]interface{})["cipher"].(map[string]interface{}), "message")
			},
			formatField: "crypto.cipher.message",
		},
		{
			name: "missing kdf params",
			mutate: func(doc map[string]interface{}) {
				delete(doc["crypto"].(map[string]interface{})["kdf"].(map[string]interface{}), "params")
			},
			formatField: "crypto.kdf.params",
		},
		{
			name: "missing kdf salt",
			mutate: func(doc map[string]interface{}) {
				delete(kdfParams(doc), "salt")
			},
			formatField: "crypto.kdf.params.salt",
		},
		{
			name: "kdf salt not hex",
			mutate: func(doc map[string]interface{}) {
				kdfParams(doc)["salt"] = "0xzz"
			},
			formatField: "crypto.kdf.params.salt",
		},
		{
			name: "missing kdf dklen",
			mutate: func(doc map[string]interface{}) {
				delete(kdfParams(doc), "dklen")
			},
			formatField: "crypto.kdf.params.dklen",
		},
		{
			name: "short kdf dklen",
			mutate: func(doc map[string]interface{}) {
				kdfParams(doc)["dklen"] = 16
			},
			formatField: "crypto.kdf.params.dklen",
		},
		{
			name: "scrypt n not a number",
			mutate: func(doc map[string]interface{}) {
				kdfParams(doc)["n"] = "262144"
			},
			formatField: "crypto.kdf.params.n",
		},
		{
			name: "missing scrypt p",
			mutate: func(doc map[string]interface{}) {
				delete(kdfParams(doc), "p")
			},
			formatField: "crypto.kdf.params.p",
		},
		{
			name: "missing cipher iv",
			mutate: func(doc map[string]interface{}) {
				delete(cipherParams(doc), "iv")
			},
			formatField: "crypto.cipher.params.iv",
		},
		{
			name: "short cipher iv",
			mutate: func(doc map[string]interface{}) {
				cipherParams(doc)["iv"] = "00ff"
			},
			formatField: "crypto.cipher.params.iv",
		},
		{
			name: "cipher message not hex",
			mutate: func(doc map[string]interface{}) {
				doc["crypto"].(map[string]interface{})["cipher"].(map[string]interface{})["message"] = "not hex"
			},
			formatField: "crypto.cipher.message",
		},
		{
			name: "checksum message not hex",
			mutate: func(doc map[string]interface{}) {
				doc["crypto"].(map[string]interface{})["checksum"].(map[string]interface{})["message"] = "xyz"
			},
			formatField: "crypto.checksum.message",
		},
		{
			name: "unsupported kdf",
			mutate: func(doc map[string]interface{}) {
				doc["crypto"].(map[string]interface{})["kdf"].(map[string]interface{})["function"] = "argon2"
			},
			unsupported: "kdf function",
		},
		{
			name: "unsupported cipher",
			mutate: func(doc map[string]interface{}) {
				doc["crypto"].(map[string]interface{})["cipher"].(map[string]interface{})["function"] = "aes-256-gcm"
			},
			unsupported: "cipher function",
		},
		{
			name:        "unsupported version",
			mutate:      func(doc map[string]interface{}) { doc["version"] = 3 },
			unsupported: "version",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := []byte(tt.raw)
			if tt.mutate != nil {
				raw = mutated(t, enc, tt.mutate)
			}
			_, err := Decrypt(raw, password)
			if tt.formatField != "" {
				var formatErr *KeystoreFormatError
				require.ErrorAs(t, err, &formatErr)
				assert.Equal(t, tt.formatField, formatErr.Field)
			}
			if tt.unsupported != "" {
				var versionErr *UnsupportedKeystoreVersionError
				require.ErrorAs(t, err, &versionErr)
				assert.Equal(t, tt.unsupported, versionErr.Field)
			}
		})
	}
}

func TestParse_Pbkdf2Params(t *testing.T) {
	secretKey, err := bls.RandKey()
	require.NoError(t, err)
	cryptoFields, err := keystorev4.New(keystorev4.WithCipher("pbkdf2")).Encrypt(secretKey.Marshal(), password)
	require.NoError(t, err)
	enc, err := json.Marshal(&Keystore{Crypto: cryptoFields, Version: 4})
	require.NoError(t, err)

	decrypted, err := Decrypt(enc, password)
	require.NoError(t, err)
	assert.DeepEqual(t, secretKey.Marshal(), decrypted.Marshal())

	raw := mutated(t, enc, func(doc map[string]interface{}) { delete(kdfParams(doc), "c") })
	_, err = Decrypt(raw, password)
	var formatErr *KeystoreFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "crypto.kdf.params.c", formatErr.Field)

	raw = mutated(t, enc, func(doc map[string]interface{}) { delete(kdfParams(doc), "prf") })
	_, err = Decrypt(raw, password)
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "crypto.kdf.params.prf", formatErr.Field)

	raw = mutated(t, enc, func(doc map[string]interface{}) { kdfParams(doc)["prf"] = "hmac-sha512" })
	_, err = Decrypt(raw, password)
	var versionErr *UnsupportedKeystoreVersionError
	require.ErrorAs(t, err, &versionErr)
	assert.Equal(t, "pbkdf2 prf", versionErr.Field)
}
