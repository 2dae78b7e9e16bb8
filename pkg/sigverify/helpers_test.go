package sigverify

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/xrpl"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// testSecpKey returns a deterministic key whose scalar is seed repeated.
func testSecpKey(seed byte) *secp256k1.PrivateKey {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = seed
	}
	return secp256k1.PrivKeyFromBytes(raw)
}

func signSecp(key *secp256k1.PrivateKey, digest []byte) []byte {
	return ecdsa.Sign(key, digest).Serialize()
}

// testEdKey returns a deterministic Ed25519 key and its 0xED-prefixed form.
func testEdKey(seed byte) (ed25519.PrivateKey, []byte) {
	s := make([]byte, ed25519.SeedSize)
	for i := range s {
		s[i] = seed
	}
	priv := ed25519.NewKeyFromSeed(s)
	prefixed := append([]byte{xrpl.Ed25519Prefix}, priv.Public().(ed25519.PublicKey)...)
	return priv, prefixed
}

func digestOf(s string) []byte {
	d := xrpl.SHA512Half([]byte(s))
	return d[:]
}

// encodeDER serializes r and s as a DER signature without normalizing s,
// unlike ecdsa.Signature.Serialize.
func encodeDER(r, s *secp256k1.ModNScalar) []byte {
	integer := func(v [32]byte) []byte {
		b := bytes.TrimLeft(v[:], "\x00")
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return append([]byte{0x02, byte(len(b))}, b...)
	}
	body := append(integer(r.Bytes()), integer(s.Bytes())...)
	return append([]byte{0x30, byte(len(body))}, body...)
}
