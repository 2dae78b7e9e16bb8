package walletverify

import (
	"context"

	"github.com/marcus-gomes-v/wallet-signature-verify/internal/log"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/sigverify"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/xrpl"
)

// minDERHexLength is the shortest hex string worth handing to the DER parser.
const minDERHexLength = 64

// Web3AuthStrategy verifies a detached secp256k1 DER signature over
// SHA512Half(challenge). No public key travels with the signature, so it is
// recovered and matched against the expected XRPL address.
type Web3AuthStrategy struct{}

func (s *Web3AuthStrategy) Name() string { return "Web3Auth" }

func (s *Web3AuthStrategy) Description() string {
	return "Web3Auth - secp256k1 raw signature verification with public key recovery"
}

func (s *Web3AuthStrategy) ValidateInput(in *VerificationInput) error {
	if _, err := requireChallenge("Web3Auth", in); err != nil {
		return err
	}
	sig := trimHexPrefix(in.SignatureData)
	if len(sig) < minDERHexLength {
		return verifyerr.Input("Web3Auth", "signature data too short (%d hex characters); expected a DER signature", len(sig))
	}
	if !isHex(sig) {
		return verifyerr.Input("Web3Auth", "signature data must be hexadecimal")
	}
	return nil
}

func (s *Web3AuthStrategy) Verify(ctx context.Context, in *VerificationInput) (*VerificationResult, error) {
	if err := s.ValidateInput(in); err != nil {
		return nil, err
	}
	logger := log.L(ctx)
	challenge := *in.Challenge

	der, err := xrpl.DecodeHex(in.SignatureData)
	if err != nil {
		return nil, err
	}
	digest := xrpl.SHA512Half([]byte(challenge))
	logger.Debugf("Challenge digest: %s", digest.Hex())

	candidates, err := sigverify.RecoverCandidates(der, digest[:])
	if err != nil {
		return nil, err
	}
	logger.Debugf("Recovered %d public key candidates", len(candidates))

	result := &VerificationResult{
		// The digested string is the expected challenge itself.
		ChallengeValid: true,
		FoundChallenge: &challenge,
	}
	for _, c := range candidates {
		derived, err := xrpl.AddressFromPublicKey(c.PublicKey)
		if err != nil {
			continue
		}
		logger.Debugf("Candidate %d: %s", c.RecoveryID, derived)

		result.DerivedAddress = derived
		result.SignatureValid = sigverify.VerifyECDSA(c.PublicKey, der, digest[:])
		if derived == in.ExpectedAddress {
			result.AddressValid = true
			logger.Infof("Address match with recovery id %d; signature check: %t", c.RecoveryID, result.SignatureValid)
			return result, nil
		}
	}

	logger.Warnf("No recovered public key matches %s", in.ExpectedAddress)
	return result, nil
}
