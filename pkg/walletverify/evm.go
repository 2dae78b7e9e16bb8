package walletverify

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/marcus-gomes-v/wallet-signature-verify/internal/log"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/xrpl"
)

const (
	evmSignatureLength = 65
	evmAddressHexLen   = 40

	// personalSignPrefix is the EIP-191 version 0x45 prefix used by
	// personal_sign.
	personalSignPrefix = "\x19Ethereum Signed Message:\n"
)

// EVMStrategy verifies EIP-191 personal_sign signatures from Ethereum-style
// wallets. The signer address is recovered from the 65-byte r||s||v
// signature and compared case-insensitively with the expected address.
type EVMStrategy struct {
	name        string
	description string
}

// NewWalletConnectStrategy returns the EVM strategy under the WalletConnect name.
func NewWalletConnectStrategy() *EVMStrategy {
	return &EVMStrategy{
		name:        "WalletConnect",
		description: "WalletConnect - EVM-compatible wallet signature verification (Ethereum-style signatures)",
	}
}

// NewBifrostStrategy returns the EVM strategy under the Bifrost name.
func NewBifrostStrategy() *EVMStrategy {
	return &EVMStrategy{
		name:        "Bifrost Wallet",
		description: "Bifrost - EVM-compatible wallet signature verification (Ethereum-style signatures)",
	}
}

func (s *EVMStrategy) Name() string { return s.name }

func (s *EVMStrategy) Description() string { return s.description }

func (s *EVMStrategy) ValidateInput(in *VerificationInput) error {
	if _, err := requireChallenge(s.name, in); err != nil {
		return err
	}
	sig := trimHexPrefix(in.SignatureData)
	if len(sig) != 2*evmSignatureLength {
		return verifyerr.Input(s.name, "signature data must be %d bytes (%d hex characters), got %d characters",
			evmSignatureLength, 2*evmSignatureLength, len(sig))
	}
	if !isHex(sig) {
		return verifyerr.Input(s.name, "signature data must be hexadecimal")
	}
	addr := trimHexPrefix(in.ExpectedAddress)
	if len(addr) != evmAddressHexLen || !isHex(addr) {
		return verifyerr.Input(s.name, "expected address must be an Ethereum address (0x + %d hex characters)", evmAddressHexLen)
	}
	return nil
}

// Verify recovers the signer of the challenge. A recovered address equal to
// the expected one proves both key ownership and a valid signature, so
// AddressValid and SignatureValid always agree.
func (s *EVMStrategy) Verify(ctx context.Context, in *VerificationInput) (*VerificationResult, error) {
	if err := s.ValidateInput(in); err != nil {
		return nil, err
	}
	logger := log.L(ctx)
	challenge := *in.Challenge

	sig, err := xrpl.DecodeHex(in.SignatureData)
	if err != nil {
		return nil, err
	}
	hash := PersonalSignHash([]byte(challenge))
	logger.Debugf("Message hash: 0x%s", hex.EncodeToString(hash))

	recovered, err := RecoverEVMAddress(sig, hash)
	if err != nil {
		return nil, err
	}
	expected := "0x" + strings.ToLower(trimHexPrefix(in.ExpectedAddress))
	match := recovered == expected
	logger.Infof("Recovered %s, expected %s: %t", recovered, expected, match)

	return &VerificationResult{
		AddressValid:   match,
		ChallengeValid: true,
		SignatureValid: match,
		DerivedAddress: recovered,
		FoundChallenge: &challenge,
	}, nil
}

// PersonalSignHash returns keccak256("\x19Ethereum Signed Message:\n" + len(msg) + msg).
func PersonalSignHash(msg []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(personalSignPrefix))
	h.Write([]byte(strconv.Itoa(len(msg))))
	h.Write(msg)
	return h.Sum(nil)
}

// RecoverEVMAddress recovers the lower-case 0x address that produced a
// 65-byte r||s||v signature over hash. v may be 0/1, 27/28 or an EIP-155
// value.
func RecoverEVMAddress(sig, hash []byte) (string, error) {
	if len(sig) != evmSignatureLength {
		return "", verifyerr.Crypto("walletverify.RecoverEVMAddress", "signature must be %d bytes, got %d", evmSignatureLength, len(sig))
	}
	recID, err := evmRecoveryID(sig[64])
	if err != nil {
		return "", err
	}

	compact := make([]byte, evmSignatureLength)
	compact[0] = 27 + recID
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return "", verifyerr.Wrap(verifyerr.KindCrypto, "walletverify.RecoverEVMAddress", err, "failed to recover address from signature")
	}
	return "0x" + hex.EncodeToString(evmAddress(pub.SerializeUncompressed())), nil
}

func evmRecoveryID(v byte) (byte, error) {
	switch {
	case v <= 3:
		return v, nil
	case v == 27 || v == 28:
		return v - 27, nil
	case v >= 35:
		return (v - 35) % 2, nil
	default:
		return 0, verifyerr.Crypto("walletverify.RecoverEVMAddress", "invalid recovery byte v=%d", v)
	}
}

// evmAddress is the last 20 bytes of keccak256 of the uncompressed point
// without its 0x04 prefix.
func evmAddress(uncompressed []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(uncompressed[1:])
	return h.Sum(nil)[12:]
}
