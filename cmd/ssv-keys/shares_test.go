package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ssvlabs/ssv-keys/crypto/bls"
	"github.com/ssvlabs/ssv-keys/crypto/keystore"
	"github.com/ssvlabs/ssv-keys/crypto/rsaencryption"
	"github.com/ssvlabs/ssv-keys/io/file"
	"github.com/ssvlabs/ssv-keys/keyshares"
	"github.com/ssvlabs/ssv-keys/operator"
	"github.com/ssvlabs/ssv-keys/testing/assert"
	"github.com/ssvlabs/ssv-keys/testing/require"
)

const (
	owner    = "0x81592c3de184a3e2c0dcb5a261bc107bfa91f494"
	password = "testpassword"
)

func writeKeystore(t *testing.T, dir, name string) {
	secretKey, err := bls.RandKey()
	require.NoError(t, err)
	ks, err := keystore.Encrypt(secretKey, password)
	require.NoError(t, err)
	enc, err := json.Marshal(ks)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), enc, file.ReadWritePermissions))
}

func writeOperatorsYAML(t *testing.T, dir string, ids ...uint64) string {
	content := "operators:\n"
	for _, id := range ids {
		_, pub, err := rsaencryption.GenerateKey()
		require.NoError(t, err)
		content += "  - id: " + strconv.FormatUint(id, 10) + "\n    publicKey: " + pub + "\n"
	}
	path := filepath.Join(dir, "operators.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), file.ReadWritePermissions))
	return path
}

func readKeyShares(t *testing.T, path string) *keyshares.KeyShares {
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := keyshares.FromJSON(b)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	return doc
}

func TestShares_SingleKeystore(t *testing.T) {
	dir := t.TempDir()
	writeKeystore(t, dir, "keystore.json")
	opsPath := writeOperatorsYAML(t, dir, 3, 1, 2, 4)
	out := filepath.Join(dir, "out")

	err := newApp().Run([]string{"ssv-keys", "shares",
		"--keystore", filepath.Join(dir, "keystore.json"),
		"--password", password,
		"--operators-file", opsPath,
		"--owner-address", owner,
		"--owner-nonce", "3",
		"--output-folder", out,
		"--no-timestamp",
	})
	require.NoError(t, err)

	doc := readKeyShares(t, filepath.Join(out, "keyshares.json"))
	assert.DeepEqual(t, []uint64{1, 2, 3, 4}, doc.Payload.OperatorIDs)
	assert.Equal(t, int64(3), doc.Data.OwnerNonce)
	require.NoError(t, doc.ValidateSingleShares(doc.Payload.SharesData, keyshares.SignatureCheck{
		OwnerAddress:  owner,
		RegisterNonce: 3,
		PublicKey:     doc.Payload.PublicKey,
	}))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, file.ReadWriteExecutePermissions, info.Mode().Perm())
}

func TestShares_KeystoreFolderIncrementsNonce(t *testing.T) {
	dir := t.TempDir()
	keystores := filepath.Join(dir, "keystores")
	require.NoError(t, os.Mkdir(keystores, file.ReadWriteExecutePermissions))
	writeKeystore(t, keystores, "keystore-m_12381_3600_0_0_0.json")
	writeKeystore(t, keystores, "keystore-m_12381_3600_1_0_0.json")
	opsPath := writeOperatorsYAML(t, dir, 1, 2, 3)
	passwordFile := filepath.Join(dir, "password.txt")
	require.NoError(t, os.WriteFile(passwordFile, []byte(password+"\n"), file.ReadWritePermissions))
	out := filepath.Join(dir, "out")

	err := newApp().Run([]string{"ssv-keys", "shares",
		"--keystore", keystores,
		"--password-file", passwordFile,
		"--operators-file", opsPath,
		"--owner-address", owner,
		"--owner-nonce", "7",
		"--output-folder", out,
		"--no-timestamp",
		"--padding", "oaep",
	})
	require.NoError(t, err)

	first := readKeyShares(t, filepath.Join(out, "keyshares-1.json"))
	second := readKeyShares(t, filepath.Join(out, "keyshares-2.json"))
	assert.Equal(t, int64(7), first.Data.OwnerNonce)
	assert.Equal(t, int64(8), second.Data.OwnerNonce)
	assert.NotEqual(t, first.Payload.PublicKey, second.Payload.PublicKey)
}

func TestShares_WrongPassword(t *testing.T) {
	dir := t.TempDir()
	writeKeystore(t, dir, "keystore.json")
	opsPath := writeOperatorsYAML(t, dir, 1, 2, 3)

	err := newApp().Run([]string{"ssv-keys", "shares",
		"--keystore", filepath.Join(dir, "keystore.json"),
		"--password", "nope",
		"--operators-file", opsPath,
		"--owner-address", owner,
		"--owner-nonce", "0",
		"--output-folder", filepath.Join(dir, "out"),
	})
	var decErr *keystore.DecryptionError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, false, file.FileExists(filepath.Join(dir, "out", "keyshares.json")))
}

func TestLoadOperatorsFile(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "list.json")
	require.NoError(t, os.WriteFile(list, []byte(`[{"id":2,"publicKey":"b"},{"id":1,"operatorKey":"a"}]`), file.ReadWritePermissions))
	ops, err := loadOperatorsFile(list)
	require.NoError(t, err)
	assert.DeepEqual(t, []operator.Operator{{ID: 2, PublicKey: "b"}, {ID: 1, PublicKey: "a"}}, ops)

	yml := filepath.Join(dir, "ops.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("- id: 5\n  publicKey: e\n"), file.ReadWritePermissions))
	ops, err = loadOperatorsFile(yml)
	require.NoError(t, err)
	assert.DeepEqual(t, []operator.Operator{{ID: 5, PublicKey: "e"}}, ops)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("operators: [unclosed"), file.ReadWritePermissions))
	_, err = loadOperatorsFile(bad)
	assert.ErrorContains(t, "could not parse operators file", err)
}

func TestParseOperatorLists(t *testing.T) {
	ops, err := parseOperatorLists("3, 1,2", "c,a, b")
	require.NoError(t, err)
	assert.DeepEqual(t, []operator.Operator{{ID: 3, PublicKey: "c"}, {ID: 1, PublicKey: "a"}, {ID: 2, PublicKey: "b"}}, ops)

	_, err = parseOperatorLists("1,x", "a,b")
	assert.ErrorContains(t, "invalid operator id", err)
	_, err = parseOperatorLists("1,2", "a")
	assert.ErrorContains(t, "got 2 operator ids and 1 operator keys", err)
}
