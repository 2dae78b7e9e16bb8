package walletverify

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

func solanaSign(seed byte, msg string) (sig, address string) {
	priv, _ := edKey(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return base58.Encode(ed25519.Sign(priv, []byte(msg))), base58.Encode(pub)
}

func TestSolana_Valid(t *testing.T) {
	msg := "example.com:1760000000:sol:login"
	sig, addr := solanaSign(0x51, msg)

	result, err := (&SolanaStrategy{}).Verify(context.Background(), NewInput(sig, addr, msg))
	require.NoError(t, err)
	assert.True(t, result.IsValid())
	assert.Equal(t, addr, result.DerivedAddress)
	require.NotNil(t, result.FoundChallenge)
	assert.Equal(t, msg, *result.FoundChallenge)
}

func TestSolana_Binding(t *testing.T) {
	msg := "example.com:1760000000:sol:login"
	sig, addr := solanaSign(0x51, msg)
	_, otherAddr := solanaSign(0x52, msg)

	result, err := (&SolanaStrategy{}).Verify(context.Background(), NewInput(sig, otherAddr, msg))
	require.NoError(t, err)
	assert.False(t, result.AddressValid)
	assert.False(t, result.SignatureValid)

	result, err = (&SolanaStrategy{}).Verify(context.Background(), NewInput(sig, addr, msg+"!"))
	require.NoError(t, err)
	assert.False(t, result.IsValid())
}

func TestSolana_InputErrors(t *testing.T) {
	msg := "hello"
	sig, addr := solanaSign(0x51, msg)
	tests := []struct {
		name string
		in   *VerificationInput
		kind verifyerr.Kind
	}{
		{"no challenge", &VerificationInput{SignatureData: sig, ExpectedAddress: addr}, verifyerr.KindInput},
		{"bad address alphabet", NewInput(sig, "0OIl", msg), verifyerr.KindInput},
		{"short address", NewInput(sig, base58.Encode([]byte{1, 2, 3}), msg), verifyerr.KindInput},
		{"short signature", NewInput(base58.Encode(make([]byte, 63)), addr, msg), verifyerr.KindInput},
		{"empty signature", NewInput("", addr, msg), verifyerr.KindInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&SolanaStrategy{}).Verify(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, verifyerr.KindOf(err), err.Error())
		})
	}
}

func TestSolana_InvalidPoint(t *testing.T) {
	bad := make([]byte, 32)
	bad[0] = 0x02
	sig, _ := solanaSign(0x51, "hello")
	_, err := (&SolanaStrategy{}).Verify(context.Background(), NewInput(sig, base58.Encode(bad), "hello"))
	require.Error(t, err)
	assert.True(t, verifyerr.IsCrypto(err))
}
