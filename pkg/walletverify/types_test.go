package walletverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationResult_IsValid(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		r := &VerificationResult{
			AddressValid:   mask&1 != 0,
			ChallengeValid: mask&2 != 0,
			SignatureValid: mask&4 != 0,
		}
		assert.Equal(t, mask == 7, r.IsValid(), "mask %03b", mask)
	}
	var nilResult *VerificationResult
	assert.False(t, nilResult.IsValid())
}

func TestNewInput(t *testing.T) {
	in := NewInput("sig", "addr", "")
	assert.Nil(t, in.Challenge)

	in = NewInput("sig", "addr", "challenge")
	if assert.NotNil(t, in.Challenge) {
		assert.Equal(t, "challenge", *in.Challenge)
	}
}
