package walletverify

import (
	"context"
	"strings"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

// Strategy verifies signatures produced by one kind of wallet.
type Strategy interface {
	// Name returns a display name such as "Xaman".
	Name() string
	// Description is a one-line summary for usage output.
	Description() string
	// ValidateInput rejects structurally unusable input with a
	// verifyerr input error before any cryptography runs.
	ValidateInput(in *VerificationInput) error
	// Verify validates the input and runs the three checks.
	Verify(ctx context.Context, in *VerificationInput) (*VerificationResult, error)
}

// requireChallenge returns the challenge or an input error naming the wallet.
func requireChallenge(wallet string, in *VerificationInput) (string, error) {
	if in == nil {
		return "", verifyerr.Input(wallet, "missing verification input")
	}
	if in.Challenge == nil {
		return "", verifyerr.Input(wallet, "challenge is required for verification")
	}
	return *in.Challenge, nil
}

func trimHexPrefix(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
