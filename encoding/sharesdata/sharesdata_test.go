package sharesdata

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	fuzz "github.com/google/gofuzz"
	"github.com/ssvlabs/ssv-keys/testing/assert"
	"github.com/ssvlabs/ssv-keys/testing/require"
)

func segments(n, encLen int) ([]byte, [][]byte, [][]byte) {
	sig := bytes.Repeat([]byte{0xaa}, 96)
	pks := make([][]byte, n)
	eks := make([][]byte, n)
	for i := 0; i < n; i++ {
		pks[i] = bytes.Repeat([]byte{byte(i + 1)}, 48)
		eks[i] = bytes.Repeat([]byte{byte(0x10 + i)}, encLen)
	}
	return sig, pks, eks
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	for _, n := range []int{1, 4, 7, 13} {
		sig, pks, eks := segments(n, 256)
		packed, err := Pack(sig, pks, eks)
		require.NoError(t, err)
		assert.Equal(t, true, strings.HasPrefix(packed, "0x"))
		assert.Equal(t, 2+2*(96+n*(48+256)), len(packed))

		unpacked, err := Unpack(packed, n)
		require.NoError(t, err)
		assert.DeepEqual(t, &SharesData{Signature: sig, PublicKeys: pks, EncryptedKeys: eks}, unpacked)
	}
}

func TestPack_PlaceholderAndSignature(t *testing.T) {
	sig, pks, eks := segments(4, 256)
	provisional, err := Pack(nil, pks, eks)
	require.NoError(t, err)
	empty, err := SignatureFrom(provisional)
	require.NoError(t, err)
	assert.DeepEqual(t, make([]byte, 96), empty)

	signed, err := WithSignature(provisional, sig)
	require.NoError(t, err)
	got, err := SignatureFrom(signed)
	require.NoError(t, err)
	assert.DeepEqual(t, sig, got)
	assert.Equal(t, provisional[2+192:], signed[2+192:], "Signing changed bytes after the signature segment")
}

func TestPack_Errors(t *testing.T) {
	sig, pks, eks := segments(4, 256)
	tests := []struct {
		name    string
		sig     []byte
		pks     [][]byte
		eks     [][]byte
		segment string
	}{
		{name: "short signature", sig: sig[:95], pks: pks, eks: eks, segment: "signature"},
		{name: "no operators", sig: sig, segment: "public keys"},
		{name: "count mismatch", sig: sig, pks: pks, eks: eks[:3], segment: "encrypted keys"},
		{name: "bad public key", sig: sig, pks: [][]byte{pks[0], pks[1][:47], pks[2], pks[3]}, eks: eks, segment: "public key"},
		{name: "unequal encrypted keys", sig: sig, pks: pks, eks: [][]byte{eks[0], eks[1], eks[2][:255], eks[3]}, segment: "encrypted key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(tt.sig, tt.pks, tt.eks)
			var formatErr *PayloadFormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.segment, formatErr.Segment)
		})
	}
}

func TestUnpack_Errors(t *testing.T) {
	sig, pks, eks := segments(4, 256)
	packed, err := Pack(sig, pks, eks)
	require.NoError(t, err)

	tests := []struct {
		name  string
		data  string
		count int
		want  string
	}{
		{name: "missing prefix", data: packed[2:], count: 4, want: "malformed shares data"},
		{name: "odd hex", data: packed[:len(packed)-1], count: 4, want: "malformed shares data"},
		{name: "uneven encrypted keys", data: packed[:len(packed)-2], count: 4, want: "does not divide evenly"},
		{name: "too short", data: packed[:2+2*(96+4*48)], count: 4, want: "too short"},
		{name: "zero operators", data: packed, count: 0, want: "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unpack(tt.data, tt.count)
			var formatErr *PayloadFormatError
			require.ErrorAs(t, err, &formatErr)
			assert.ErrorContains(t, tt.want, err)
		})
	}
}

func TestUnpack_WrongOperatorCount(t *testing.T) {
	sig, pks, eks := segments(4, 256)
	packed, err := Pack(sig, pks, eks)
	require.NoError(t, err)
	// 4*(48+256) = 1216 bytes after the signature; with 3 operators 1216-144 = 1072 is not divisible by 3.
	_, err = Unpack(packed, 3)
	assert.ErrorContains(t, "does not divide evenly", err)
}

func TestUnpack_Fuzz(t *testing.T) {
	fuzzer := fuzz.NewWithSeed(0).NilChance(0).NumElements(90, 800)
	for i := 0; i < 1000; i++ {
		var raw []byte
		var c uint8
		fuzzer.Fuzz(&raw)
		fuzzer.Fuzz(&c)
		count := int(c%8) + 1
		sd, err := Unpack(hexutil.Encode(raw), count)
		if err != nil {
			continue
		}
		require.Equal(t, count, len(sd.PublicKeys))
		require.Equal(t, count, len(sd.EncryptedKeys))
		enc, err := sd.Bytes()
		require.NoError(t, err)
		assert.DeepEqual(t, raw, enc)
	}
}

func TestSignatureFrom_Fuzz(t *testing.T) {
	fuzzer := fuzz.NewWithSeed(0)
	for i := 0; i < 1000; i++ {
		var s string
		fuzzer.Fuzz(&s)
		_, _ = SignatureFrom(s)
		_, _ = Unpack(s, 4)
	}
}
