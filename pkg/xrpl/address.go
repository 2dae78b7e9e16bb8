package xrpl

import (
	"bytes"
	"crypto/sha256"

	"github.com/mr-tron/base58"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

// Alphabet is the XRPL base58 alphabet. It differs from Bitcoin's so that
// account addresses (version byte 0x00) always start with 'r'.
const Alphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

const (
	accountIDVersion = 0x00
	checksumLength   = 4
)

var xrplAlphabet = base58.NewAlphabet(Alphabet)

// EncodeAddress encodes a 20-byte account id as an r-address:
// base58(version || id || checksum), checksum being the first four bytes of
// SHA-256(SHA-256(version || id)).
func EncodeAddress(accountID [20]byte) string {
	payload := make([]byte, 0, 1+len(accountID)+checksumLength)
	payload = append(payload, accountIDVersion)
	payload = append(payload, accountID[:]...)
	payload = append(payload, checksum(payload)...)
	return base58.EncodeAlphabet(payload, xrplAlphabet)
}

// DecodeAddress is the inverse of EncodeAddress. It rejects strings outside
// the alphabet, the wrong version byte, wrong payload lengths and bad checksums.
func DecodeAddress(address string) ([20]byte, error) {
	var id [20]byte
	if address == "" {
		return id, verifyerr.Input("xrpl.DecodeAddress", "empty address")
	}
	raw, err := base58.DecodeAlphabet(address, xrplAlphabet)
	if err != nil {
		return id, verifyerr.Wrap(verifyerr.KindInput, "xrpl.DecodeAddress", err, "invalid base58")
	}
	if len(raw) != 1+len(id)+checksumLength {
		return id, verifyerr.Input("xrpl.DecodeAddress", "decoded address is %d bytes, want %d", len(raw), 1+len(id)+checksumLength)
	}
	if raw[0] != accountIDVersion {
		return id, verifyerr.Input("xrpl.DecodeAddress", "unexpected version byte 0x%02X", raw[0])
	}
	body, sum := raw[:len(raw)-checksumLength], raw[len(raw)-checksumLength:]
	if !bytes.Equal(checksum(body), sum) {
		return id, verifyerr.Input("xrpl.DecodeAddress", "checksum mismatch")
	}
	copy(id[:], body[1:])
	return id, nil
}

// IsValidAddress reports whether address decodes to an account id.
func IsValidAddress(address string) bool {
	_, err := DecodeAddress(address)
	return err == nil
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}
