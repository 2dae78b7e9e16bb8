package walletverify

import (
	"context"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/sigverify"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/xrpl"
)

func web3authSign(t *testing.T, seed byte, challenge string) (sigHex, address string) {
	t.Helper()
	key := secpKey(seed)
	digest := xrpl.SHA512Half([]byte(challenge))
	der := ecdsa.Sign(key, digest[:]).Serialize()
	return xrpl.HexUpper(der), mustAddress(t, key.PubKey().SerializeCompressed())
}

func TestWeb3Auth_Vector(t *testing.T) {
	v := loadVectors(t).Web3Auth
	result, err := (&Web3AuthStrategy{}).Verify(context.Background(), vectorInput(v))
	require.NoError(t, err)

	assert.True(t, result.IsValid())
	assert.Equal(t, v.Address, result.DerivedAddress)
	require.NotNil(t, result.FoundChallenge)
	assert.Equal(t, v.Challenge, *result.FoundChallenge)
}

func TestWeb3Auth_Generated(t *testing.T) {
	for seed := byte(1); seed <= 10; seed++ {
		challenge := "example.com:1760000000:web3auth:login"
		sig, addr := web3authSign(t, seed, challenge)

		result, err := (&Web3AuthStrategy{}).Verify(context.Background(), NewInput(sig, addr, challenge))
		require.NoError(t, err)
		assert.True(t, result.IsValid(), "seed %d", seed)
		assert.Equal(t, addr, result.DerivedAddress)
	}
}

func TestWeb3Auth_Deterministic(t *testing.T) {
	v := loadVectors(t).Web3Auth
	first, err := (&Web3AuthStrategy{}).Verify(context.Background(), vectorInput(v))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := (&Web3AuthStrategy{}).Verify(context.Background(), vectorInput(v))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestWeb3Auth_WrongAddress(t *testing.T) {
	vs := loadVectors(t)
	in := vectorInput(vs.Web3Auth)
	in.ExpectedAddress = vs.Xaman.Address

	result, err := (&Web3AuthStrategy{}).Verify(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, result.AddressValid)
	assert.False(t, result.IsValid())
	assert.NotEqual(t, vs.Xaman.Address, result.DerivedAddress)

	// With no match, the result reports the last recovered candidate.
	der, err := xrpl.DecodeHex(in.SignatureData)
	require.NoError(t, err)
	digest := xrpl.SHA512Half([]byte(*in.Challenge))
	candidates, err := sigverify.RecoverCandidates(der, digest[:])
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	last := candidates[len(candidates)-1]

	assert.Equal(t, mustAddress(t, last.PublicKey), result.DerivedAddress)
	assert.Equal(t, sigverify.VerifyECDSA(last.PublicKey, der, digest[:]), result.SignatureValid)
}

func TestWeb3Auth_ChallengeBinding(t *testing.T) {
	v := loadVectors(t).Web3Auth
	in := vectorInput(v)
	in.Challenge = strPtr(v.Challenge + "x")

	result, err := (&Web3AuthStrategy{}).Verify(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, result.AddressValid, "a different challenge recovers different keys")
	assert.False(t, result.IsValid())
}

func TestWeb3Auth_TamperedSignature(t *testing.T) {
	v := loadVectors(t).Web3Auth
	in := vectorInput(v)
	in.SignatureData = strings.Replace(v.Signature, "1CB9", "1CB8", 1)

	result, err := (&Web3AuthStrategy{}).Verify(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, result.IsValid())
}

func TestWeb3Auth_InputErrors(t *testing.T) {
	v := loadVectors(t).Web3Auth
	tests := []struct {
		name   string
		modify func(in *VerificationInput)
		kind   verifyerr.Kind
	}{
		{"no challenge", func(in *VerificationInput) { in.Challenge = nil }, verifyerr.KindInput},
		{"too short", func(in *VerificationInput) { in.SignatureData = "3044" }, verifyerr.KindInput},
		{"not hex", func(in *VerificationInput) { in.SignatureData = strings.Repeat("g", 140) }, verifyerr.KindInput},
		{"odd length", func(in *VerificationInput) { in.SignatureData = v.Signature + "0" }, verifyerr.KindParse},
		{"not DER", func(in *VerificationInput) { in.SignatureData = strings.Repeat("AB", 70) }, verifyerr.KindCrypto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := vectorInput(v)
			tt.modify(in)
			_, err := (&Web3AuthStrategy{}).Verify(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, verifyerr.KindOf(err), err.Error())
		})
	}
}
