package bls

import (
	"bytes"
	"testing"

	"github.com/ssvlabs/ssv-keys/crypto/bls/common"
	"github.com/ssvlabs/ssv-keys/testing/assert"
	"github.com/ssvlabs/ssv-keys/testing/require"
)

func TestSignVerify_CrossImplementation(t *testing.T) {
	priv, err := RandKey()
	require.NoError(t, err)
	pub := priv.PublicKey()
	msg := []byte("0x0000000000000000000000000000000000000001:0")
	sig := priv.Sign(msg)

	assert.Equal(t, true, sig.Verify(pub, msg), "Herumi signature did not verify")
	ok, err := VerifySignature(sig.Marshal(), msg, pub.Marshal())
	require.NoError(t, err)
	assert.Equal(t, true, ok, "blst did not verify herumi signature")

	ok, err = VerifySignature(sig.Marshal(), []byte("other message"), pub.Marshal())
	require.NoError(t, err)
	assert.Equal(t, false, ok)
}

func TestVerifySignature_Malformed(t *testing.T) {
	priv, err := RandKey()
	require.NoError(t, err)
	sig := priv.Sign([]byte("hello")).Marshal()

	_, err = VerifySignature(sig[:95], []byte("hello"), priv.PublicKey().Marshal())
	assert.ErrorContains(t, "signature must be 96 bytes", err)
	_, err = VerifySignature(sig, []byte("hello"), make([]byte, 48))
	assert.NotNil(t, err)
}

func TestSecretKeyFromBytes(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
		err  string
	}{
		{name: "Nil", err: "secret key must be 32 bytes"},
		{name: "Short", key: make([]byte, 31), err: "secret key must be 32 bytes"},
		{name: "Zero", key: common.ZeroSecretKey[:], err: common.ErrZeroKey.Error()},
		{name: "Bad", key: bytes.Repeat([]byte{0xff}, 32), err: "could not unmarshal bytes into secret key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SecretKeyFromBytes(tt.key)
			assert.ErrorContains(t, tt.err, err)
		})
	}
}

func TestSecretKey_MarshalRoundTrip(t *testing.T) {
	priv, err := RandKey()
	require.NoError(t, err)
	enc := priv.Marshal()
	assert.Equal(t, 32, len(enc))
	priv2, err := SecretKeyFromBytes(enc)
	require.NoError(t, err)
	assert.Equal(t, true, priv.PublicKey().Equals(priv2.PublicKey()))

	pub, err := PublicKeyFromBytes(priv.PublicKey().Marshal())
	require.NoError(t, err)
	assert.Equal(t, true, pub.Equals(priv.PublicKey()))
	assert.Equal(t, true, pub.Copy().Equals(pub))
}

func TestSecretKey_Zeroize(t *testing.T) {
	priv, err := RandKey()
	require.NoError(t, err)
	priv.Zeroize()
	assert.DeepEqual(t, common.ZeroSecretKey[:], priv.Marshal())
}
