package xrpl

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/ripemd160"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

// Digest is the 32-byte output of SHA512Half.
type Digest [32]byte

// Hex returns the upper-case hex form used by XRPL tooling.
func (d Digest) Hex() string {
	return HexUpper(d[:])
}

// SHA512Half hashes data with SHA-512 and keeps the first 32 bytes.
func SHA512Half(data []byte) Digest {
	h := sha512.Sum512(data)
	var d Digest
	copy(d[:], h[:32])
	return d
}

// AccountID derives the 20-byte account identifier of a public key:
// RIPEMD-160(SHA-256(pubkey)).
//
// The key must be 33 bytes: a compressed secp256k1 point (0x02/0x03 prefix)
// or an Ed25519 key behind the 0xED marker.
func AccountID(pubKey []byte) ([20]byte, error) {
	var id [20]byte
	if len(pubKey) != PublicKeyLength {
		return id, verifyerr.Input("xrpl.AccountID", "public key must be %d bytes, got %d", PublicKeyLength, len(pubKey))
	}
	switch pubKey[0] {
	case 0x02, 0x03, Ed25519Prefix:
	default:
		return id, verifyerr.Input("xrpl.AccountID", "unknown public key prefix 0x%02X", pubKey[0])
	}

	sha := sha256.Sum256(pubKey)
	r := ripemd160.New()
	r.Write(sha[:])
	copy(id[:], r.Sum(nil))
	return id, nil
}

// AddressFromPublicKey derives the classic r-address of a public key.
func AddressFromPublicKey(pubKey []byte) (string, error) {
	id, err := AccountID(pubKey)
	if err != nil {
		return "", err
	}
	return EncodeAddress(id), nil
}

// HexUpper is the upper-case counterpart of hex.EncodeToString.
func HexUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
