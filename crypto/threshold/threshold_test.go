package threshold

import (
	"testing"

	"github.com/ssvlabs/ssv-keys/crypto/bls"
	"github.com/ssvlabs/ssv-keys/testing/assert"
	"github.com/ssvlabs/ssv-keys/testing/require"
)

func TestThreshold(t *testing.T) {
	tests := []struct {
		n         int
		threshold int
		faulty    int
	}{
		{n: 3, threshold: 1, faulty: 0},
		{n: 4, threshold: 2, faulty: 1},
		{n: 7, threshold: 3, faulty: 2},
		{n: 10, threshold: 4, faulty: 3},
		{n: 13, threshold: 5, faulty: 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.threshold, Threshold(tt.n), "Wrong threshold for n=%d", tt.n)
		assert.Equal(t, tt.faulty, FaultTolerance(tt.n), "Wrong fault tolerance for n=%d", tt.n)
	}
}

func TestSplit_ReconstructFromThreshold(t *testing.T) {
	for _, n := range []int{4, 7, 10} {
		secretKey, err := bls.RandKey()
		require.NoError(t, err)
		res, err := Split(secretKey, n)
		require.NoError(t, err)
		require.Equal(t, n, len(res.Shares))
		assert.Equal(t, true, res.ValidatorPublicKey.Equals(secretKey.PublicKey()))

		th := Threshold(n)
		// Every window of t consecutive shares reconstructs the key.
		for start := 0; start+th <= n; start++ {
			sk, err := Reconstruct(res.Shares[start : start+th])
			require.NoError(t, err)
			assert.DeepEqual(t, secretKey.Marshal(), sk.Marshal(), "n=%d start=%d", n, start)
		}

		sk, err := Reconstruct(res.Shares[1:th])
		require.NoError(t, err)
		assert.DeepNotEqual(t, secretKey.Marshal(), sk.Marshal(), "Reconstructed from t-1 shares for n=%d", n)
	}
}

func TestSplitForOperators_UsesOperatorIDs(t *testing.T) {
	secretKey, err := bls.RandKey()
	require.NoError(t, err)
	ids := []uint64{11, 42, 7, 99}
	res, err := SplitForOperators(secretKey, ids)
	require.NoError(t, err)
	for i, s := range res.Shares {
		assert.Equal(t, ids[i], s.OperatorID)
		assert.Equal(t, true, s.PublicKey.Equals(s.SecretKey.PublicKey()))
	}
	sk, err := Reconstruct([]*Share{res.Shares[3], res.Shares[1]})
	require.NoError(t, err)
	assert.DeepEqual(t, secretKey.Marshal(), sk.Marshal())
}

func TestSplit_InvalidOperatorCount(t *testing.T) {
	secretKey, err := bls.RandKey()
	require.NoError(t, err)
	for _, n := range []int{0, 1, 2} {
		_, err := Split(secretKey, n)
		var countErr *InvalidOperatorCountError
		require.ErrorAs(t, err, &countErr)
		assert.Equal(t, n, countErr.Count)
	}
}

func TestSplitForOperators_InvalidIDs(t *testing.T) {
	secretKey, err := bls.RandKey()
	require.NoError(t, err)
	tests := []struct {
		name string
		ids  []uint64
		want string
	}{
		{name: "zero id", ids: []uint64{0, 1, 2, 3}, want: "operator id 0"},
		{name: "duplicate id", ids: []uint64{1, 2, 2, 3}, want: "duplicate operator id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitForOperators(secretKey, tt.ids)
			var schemeErr *ThresholdSchemeError
			require.ErrorAs(t, err, &schemeErr)
			assert.ErrorContains(t, tt.want, err)
		})
	}
}

func TestZeroize(t *testing.T) {
	secretKey, err := bls.RandKey()
	require.NoError(t, err)
	res, err := Split(secretKey, 4)
	require.NoError(t, err)
	Zeroize(res.Shares)
	for _, s := range res.Shares {
		assert.DeepEqual(t, make([]byte, 32), s.SecretKey.Marshal())
	}
	assert.DeepNotEqual(t, make([]byte, 32), secretKey.Marshal(), "Splitting must not zeroize the input key")
}
