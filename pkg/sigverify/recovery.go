package sigverify

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

const (
	// compactSigMagicOffset is added to the recovery id in the header byte
	// of a 65-byte compact signature; +4 requests a compressed key.
	compactSigMagicOffset    = 27
	compactSigCompressedFlag = 4
	compactSignatureLength   = 65
	maxRecoveryID            = 3
)

// Candidate is a public key recovered from a signature and digest.
type Candidate struct {
	RecoveryID int
	PublicKey  []byte // 33-byte compressed point
}

// DERToCompact converts a DER signature into its 64-byte r||s form.
func DERToCompact(derSig []byte) ([64]byte, error) {
	var out [64]byte
	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return out, verifyerr.Wrap(verifyerr.KindCrypto, "sigverify.DERToCompact", err, "malformed DER signature")
	}
	r, s := sig.R(), sig.S()
	r.PutBytesUnchecked(out[:32])
	s.PutBytesUnchecked(out[32:])
	return out, nil
}

// RecoverCandidates tries recovery ids 0 through 3, in order, and returns
// every public key that recovers to a valid curve point. Recovery alone does
// not prove ownership; callers must match the derived address.
func RecoverCandidates(derSig, digest []byte) ([]Candidate, error) {
	if len(digest) != DigestLength {
		return nil, verifyerr.Crypto("sigverify.RecoverCandidates", "digest must be %d bytes, got %d", DigestLength, len(digest))
	}
	rs, err := DERToCompact(derSig)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, maxRecoveryID+1)
	for id := 0; id <= maxRecoveryID; id++ {
		pub, err := RecoverCompact(id, rs, digest)
		if err != nil {
			continue
		}
		candidates = append(candidates, Candidate{RecoveryID: id, PublicKey: pub})
	}
	return candidates, nil
}

// RecoverCompact recovers the compressed public key for one recovery id.
func RecoverCompact(recoveryID int, rs [64]byte, digest []byte) ([]byte, error) {
	if recoveryID < 0 || recoveryID > maxRecoveryID {
		return nil, verifyerr.Crypto("sigverify.RecoverCompact", "recovery id %d out of range", recoveryID)
	}
	if len(digest) != DigestLength {
		return nil, verifyerr.Crypto("sigverify.RecoverCompact", "digest must be %d bytes, got %d", DigestLength, len(digest))
	}
	compact := make([]byte, compactSignatureLength)
	compact[0] = byte(compactSigMagicOffset + compactSigCompressedFlag + recoveryID)
	copy(compact[1:], rs[:])

	pub, _, err := ecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return nil, verifyerr.Wrap(verifyerr.KindCrypto, "sigverify.RecoverCompact", err, "recovery failed")
	}
	return pub.SerializeCompressed(), nil
}
