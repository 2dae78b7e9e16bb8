package walletverify

import (
	"context"
	"strings"

	"github.com/marcus-gomes-v/wallet-signature-verify/internal/log"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/sigverify"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/xrpl"
)

// minSignedBlobHexLength rejects inputs too short to hold a key, a
// signature and an account.
const minSignedBlobHexLength = 100

// XamanStrategy verifies a complete signed XRPL SignIn transaction as
// returned by Xaman (formerly Xumm). The challenge travels in the first
// MemoData of the transaction.
type XamanStrategy struct{}

func (s *XamanStrategy) Name() string { return "Xaman" }

func (s *XamanStrategy) Description() string {
	return "Xaman Wallet (formerly Xumm) - XRPL SignIn transactions"
}

func (s *XamanStrategy) ValidateInput(in *VerificationInput) error {
	if in == nil {
		return verifyerr.Input("Xaman", "missing verification input")
	}
	blob := trimHexPrefix(in.SignatureData)
	if len(blob) < minSignedBlobHexLength {
		return verifyerr.Input("Xaman", "signature data too short (%d hex characters); expected a complete signed transaction", len(blob))
	}
	if !isHex(blob) {
		return verifyerr.Input("Xaman", "signature data must be hexadecimal")
	}
	return nil
}

// Verify runs the address, challenge and signature checks independently;
// a failed check never hides the outcome of the others.
func (s *XamanStrategy) Verify(ctx context.Context, in *VerificationInput) (*VerificationResult, error) {
	if err := s.ValidateInput(in); err != nil {
		return nil, err
	}
	logger := log.L(ctx)

	fields, err := xrpl.ExtractFields(in.SignatureData)
	if err != nil {
		return nil, err
	}
	pubKey, txnSig := fields.SigningPubKey(), fields.TxnSignature()
	if len(pubKey) == 0 || len(txnSig) == 0 {
		return nil, verifyerr.Input("Xaman", "transaction has no SigningPubKey or TxnSignature")
	}
	logger.Debugf("SigningPubKey: %s (%s)", xrpl.HexUpper(pubKey), sigverify.KeyTypeOf(pubKey))
	logger.Debugf("TxnSignature: %d bytes", len(txnSig))

	derived, err := xrpl.AddressFromPublicKey(pubKey)
	if err != nil {
		return nil, err
	}
	result := &VerificationResult{
		DerivedAddress: derived,
		AddressValid:   derived == in.ExpectedAddress,
	}
	logger.Infof("Address check: %t (derived %s)", result.AddressValid, derived)

	result.ChallengeValid, result.FoundChallenge = matchMemoChallenge(fields, in.Challenge)
	if in.Challenge != nil {
		logger.Infof("Challenge check: %t", result.ChallengeValid)
	}

	unsigned := fields.UnsignedBytes()
	digest := xrpl.SHA512Half(unsigned)
	if log.IsDebugEnabled() {
		logger.Debugf("Unsigned blob: %s", xrpl.HexUpper(unsigned))
		logger.Debugf("Signing digest: %s", digest.Hex())
	}

	result.SignatureValid = sigverify.Verify(pubKey, txnSig, digest[:])
	logger.Infof("Signature check: %t", result.SignatureValid)
	return result, nil
}

// matchMemoChallenge compares the first MemoData with the expected
// challenge. Without an expected challenge the check passes and nothing is
// reported as found; without a memo it fails.
func matchMemoChallenge(fields *xrpl.TransactionFields, expected *string) (bool, *string) {
	if expected == nil {
		return true, nil
	}
	memo := fields.MemoData()
	if len(memo) == 0 {
		return false, nil
	}
	found := strings.ToValidUTF8(string(memo), "\uFFFD")
	return found == *expected, &found
}
