package sigverify

import (
	"crypto/ed25519"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// DigestLength is the only digest size the ECDSA path accepts.
const DigestLength = 32

// Verify checks signature against digest with the algorithm implied by
// pubKey. Any malformed input yields false.
func Verify(pubKey, signature, digest []byte) bool {
	switch KeyTypeOf(pubKey) {
	case KeyTypeEd25519:
		if len(digest) != DigestLength {
			return false
		}
		return VerifyEd25519(pubKey[1:], digest, signature)
	case KeyTypeSecp256k1:
		return VerifyECDSA(pubKey, signature, digest)
	default:
		return false
	}
}

// VerifyECDSA verifies a DER-encoded secp256k1 signature over a 32-byte
// digest with a 33-byte compressed public key. Only canonical low-S
// signatures are accepted; the high-S twin of a valid signature is rejected.
func VerifyECDSA(pubKey, derSig, digest []byte) bool {
	if KeyTypeOf(pubKey) != KeyTypeSecp256k1 || len(digest) != DigestLength {
		return false
	}
	pk, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false
	}
	if s := sig.S(); s.IsOverHalfOrder() {
		return false
	}
	return sig.Verify(digest, pk)
}

// VerifyEd25519 verifies a raw 64-byte Ed25519 signature over message with
// a raw 32-byte public key.
func VerifyEd25519(pubKey, message, signature []byte) bool {
	if len(pubKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	if !IsValidEd25519Point(pubKey) {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey), message, signature)
}
