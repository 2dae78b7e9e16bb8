package walletverify

import (
	"crypto/ed25519"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/xrpl"
)

type testVector struct {
	Signature string `json:"signature"`
	Address   string `json:"address"`
	Challenge string `json:"challenge"`
	PublicKey string `json:"public_key"`
}

type testVectors struct {
	Xaman         testVector `json:"xaman"`
	Web3Auth      testVector `json:"web3auth"`
	WalletConnect testVector `json:"wallet_connect"`
}

// loadVectors reads the shared signing vectors from fixtures/vectors.json.
func loadVectors(t *testing.T) testVectors {
	t.Helper()
	file, err := os.Open(filepath.Join("..", "..", "fixtures", "vectors.json"))
	if err != nil {
		t.Fatalf("Failed to open fixtures: %v", err)
	}
	defer file.Close()

	var v testVectors
	if err := json.NewDecoder(file).Decode(&v); err != nil {
		t.Fatalf("Failed to decode fixtures: %v", err)
	}
	return v
}

func strPtr(s string) *string { return &s }

func vectorInput(v testVector) *VerificationInput {
	return &VerificationInput{
		SignatureData:   v.Signature,
		ExpectedAddress: v.Address,
		Challenge:       strPtr(v.Challenge),
	}
}

func vlBlob(header byte, payload []byte) []byte {
	if len(payload) > 192 {
		panic("test helper only encodes short blobs")
	}
	return append([]byte{header, byte(len(payload))}, payload...)
}

// signIn builds a signed SignIn-style transaction: SigningPubKey,
// TxnSignature, Account and a Memos array carrying memo. sign receives the
// SHA512Half digest of the unsigned blob.
func signIn(t *testing.T, pubKey []byte, memo string, sign func(digest []byte) []byte) string {
	t.Helper()
	id, err := xrpl.AccountID(pubKey)
	if err != nil {
		t.Fatalf("AccountID: %v", err)
	}

	keyField := vlBlob(0x73, pubKey)
	var tail []byte
	tail = append(tail, vlBlob(0x81, id[:])...)
	if memo != "" {
		tail = append(tail, 0xF9, 0xEA)
		tail = append(tail, vlBlob(0x7C, []byte("Auth"))...)
		tail = append(tail, vlBlob(0x7D, []byte(memo))...)
		tail = append(tail, 0xE1, 0xF1)
	}

	unsigned := append([]byte{}, xrpl.SigningPrefix[:]...)
	unsigned = append(unsigned, keyField...)
	unsigned = append(unsigned, tail...)
	digest := xrpl.SHA512Half(unsigned)

	var blob []byte
	blob = append(blob, keyField...)
	blob = append(blob, vlBlob(0x74, sign(digest[:]))...)
	blob = append(blob, tail...)
	return xrpl.HexUpper(blob)
}

func secpKey(seed byte) *secp256k1.PrivateKey {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = seed
	}
	return secp256k1.PrivKeyFromBytes(raw)
}

func secpSigner(key *secp256k1.PrivateKey) func([]byte) []byte {
	return func(digest []byte) []byte { return ecdsa.Sign(key, digest).Serialize() }
}

func edKey(seed byte) (ed25519.PrivateKey, []byte) {
	s := make([]byte, ed25519.SeedSize)
	for i := range s {
		s[i] = seed
	}
	priv := ed25519.NewKeyFromSeed(s)
	return priv, append([]byte{0xED}, priv.Public().(ed25519.PublicKey)...)
}

func mustAddress(t *testing.T, pubKey []byte) string {
	t.Helper()
	addr, err := xrpl.AddressFromPublicKey(pubKey)
	if err != nil {
		t.Fatalf("AddressFromPublicKey: %v", err)
	}
	return addr
}
