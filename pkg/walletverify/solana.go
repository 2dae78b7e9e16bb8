package walletverify

import (
	"context"

	"github.com/mr-tron/base58"

	"github.com/marcus-gomes-v/wallet-signature-verify/internal/log"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/sigverify"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

const (
	solanaPublicKeyLength = 32
	solanaSignatureLength = 64
)

// SolanaStrategy verifies an Ed25519 signature over the raw challenge. A
// Solana address is the base58 public key itself, so a valid signature
// under that key also proves the address.
type SolanaStrategy struct{}

func (s *SolanaStrategy) Name() string { return "Solana" }

func (s *SolanaStrategy) Description() string { return "Solana wallets (Ed25519 signatures)" }

func (s *SolanaStrategy) ValidateInput(in *VerificationInput) error {
	if _, err := requireChallenge("Solana", in); err != nil {
		return err
	}
	if _, err := decodeBase58Len("address", in.ExpectedAddress, solanaPublicKeyLength); err != nil {
		return err
	}
	_, err := decodeBase58Len("signature", in.SignatureData, solanaSignatureLength)
	return err
}

func (s *SolanaStrategy) Verify(ctx context.Context, in *VerificationInput) (*VerificationResult, error) {
	if err := s.ValidateInput(in); err != nil {
		return nil, err
	}
	challenge := *in.Challenge

	pubKey, err := decodeBase58Len("address", in.ExpectedAddress, solanaPublicKeyLength)
	if err != nil {
		return nil, err
	}
	sig, err := decodeBase58Len("signature", in.SignatureData, solanaSignatureLength)
	if err != nil {
		return nil, err
	}
	if !sigverify.IsValidEd25519Point(pubKey) {
		return nil, verifyerr.Crypto("Solana", "address is not a valid Ed25519 public key")
	}

	valid := sigverify.VerifyEd25519(pubKey, []byte(challenge), sig)
	log.L(ctx).Infof("Ed25519 signature check: %t", valid)

	return &VerificationResult{
		AddressValid:   valid,
		ChallengeValid: true,
		SignatureValid: valid,
		DerivedAddress: base58.Encode(pubKey),
		FoundChallenge: &challenge,
	}, nil
}

func decodeBase58Len(what, s string, want int) ([]byte, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, verifyerr.Wrap(verifyerr.KindInput, "Solana", err, "invalid "+what+" (base58 decode failed)")
	}
	if len(b) != want {
		return nil, verifyerr.Input("Solana", "%s must decode to %d bytes, got %d", what, want, len(b))
	}
	return b, nil
}
