package sigverify

import (
	"filippo.io/edwards25519"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/xrpl"
)

// KeyType is the signing algorithm implied by a public key's encoding.
type KeyType int

const (
	KeyTypeUnknown KeyType = iota
	KeyTypeSecp256k1
	KeyTypeEd25519
)

func (kt KeyType) String() string {
	switch kt {
	case KeyTypeSecp256k1:
		return "secp256k1"
	case KeyTypeEd25519:
		return "ed25519"
	default:
		return "unknown"
	}
}

// KeyTypeOf determines the key type from a public key's raw bytes:
//   - Ed25519: 33 bytes, first byte 0xED
//   - secp256k1: 33 bytes, first byte 0x02 or 0x03 (compressed point)
func KeyTypeOf(pubKey []byte) KeyType {
	if len(pubKey) != xrpl.PublicKeyLength {
		return KeyTypeUnknown
	}
	switch pubKey[0] {
	case xrpl.Ed25519Prefix:
		return KeyTypeEd25519
	case 0x02, 0x03:
		return KeyTypeSecp256k1
	default:
		return KeyTypeUnknown
	}
}

// IsValidEd25519Point reports whether key is a canonical encoding of a point
// on edwards25519.
func IsValidEd25519Point(key []byte) bool {
	if len(key) != 32 {
		return false
	}
	_, err := edwards25519.NewIdentityPoint().SetBytes(key)
	return err == nil
}
