package xrpl

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// xamanVector mirrors the "xaman" entry of fixtures/vectors.json.
type xamanVector struct {
	Signature    string `json:"signature"`
	Address      string `json:"address"`
	Challenge    string `json:"challenge"`
	PublicKey    string `json:"public_key"`
	AccountID    string `json:"account_id"`
	TxnSignature string `json:"txn_signature"`
	Unsigned     string `json:"unsigned"`
	Digest       string `json:"digest"`
}

func fixturesDir() string {
	return filepath.Join("..", "..", "fixtures")
}

// loadXamanVector reads the real Xaman SignIn vector from the fixtures directory.
func loadXamanVector(t *testing.T) xamanVector {
	t.Helper()
	file, err := os.Open(filepath.Join(fixturesDir(), "vectors.json"))
	if err != nil {
		t.Fatalf("Failed to open fixtures: %v", err)
	}
	defer file.Close()

	var vectors struct {
		Xaman xamanVector `json:"xaman"`
	}
	if err := json.NewDecoder(file).Decode(&vectors); err != nil {
		t.Fatalf("Failed to decode fixtures: %v", err)
	}
	return vectors.Xaman
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}
