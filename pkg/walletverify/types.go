package walletverify

// VerificationInput is what a wallet hands back after signing a challenge.
// The encoding of SignatureData depends on the wallet:
//   - Xaman: hex of the complete signed SignIn transaction
//   - Web3Auth: hex of a DER secp256k1 signature
//   - WalletConnect, Bifrost: hex of a 65-byte r||s||v signature
//   - Solana: base58 of a 64-byte Ed25519 signature
type VerificationInput struct {
	SignatureData   string
	ExpectedAddress string
	Challenge       *string
}

// NewInput is a convenience constructor; an empty challenge means none.
func NewInput(signatureData, expectedAddress, challenge string) *VerificationInput {
	in := &VerificationInput{SignatureData: signatureData, ExpectedAddress: expectedAddress}
	if challenge != "" {
		in.Challenge = &challenge
	}
	return in
}

// VerificationResult holds the outcome of the three checks.
type VerificationResult struct {
	AddressValid   bool    `json:"address_valid" yaml:"address_valid"`
	ChallengeValid bool    `json:"challenge_valid" yaml:"challenge_valid"`
	SignatureValid bool    `json:"signature_valid" yaml:"signature_valid"`
	DerivedAddress string  `json:"derived_address" yaml:"derived_address"`
	FoundChallenge *string `json:"found_challenge,omitempty" yaml:"found_challenge,omitempty"`
}

// IsValid reports whether every check passed.
func (r *VerificationResult) IsValid() bool {
	return r != nil && r.AddressValid && r.ChallengeValid && r.SignatureValid
}
