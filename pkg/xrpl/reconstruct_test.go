package xrpl

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

func TestReconstructUnsigned_XamanVector(t *testing.T) {
	v := loadXamanVector(t)

	unsigned, err := ReconstructUnsigned(v.Signature)
	require.NoError(t, err)
	assert.Equal(t, v.Unsigned, HexUpper(unsigned))

	d, err := SigningHash(v.Signature)
	require.NoError(t, err)
	assert.Equal(t, v.Digest, d.Hex())
}

func TestReconstructUnsigned_PreservesOrder(t *testing.T) {
	pub := blobField(0x73, bytes.Repeat([]byte{0x02}, 33))
	sig := blobField(0x74, bytes.Repeat([]byte{0x30}, 71))
	seq := []byte{0x24, 0, 0, 0, 7}
	acct := blobField(0x81, bytes.Repeat([]byte{0x11}, 20))

	// Signature first, public key last: every other field keeps its slot.
	blob := bytes.Join([][]byte{sig, seq, acct, pub}, nil)

	unsigned, err := ReconstructUnsigned(hex.EncodeToString(blob))
	require.NoError(t, err)

	want := bytes.Join([][]byte{SigningPrefix[:], seq, acct, pub}, nil)
	assert.Equal(t, want, unsigned)
}

func TestReconstructUnsigned_WithoutSignature(t *testing.T) {
	blob := []byte{0x24, 0, 0, 0, 7}
	unsigned, err := ReconstructUnsigned(hex.EncodeToString(blob))
	require.NoError(t, err)
	assert.Equal(t, append(SigningPrefix[:], blob...), unsigned)
}

func TestReconstructUnsigned_PayloadContainingTags(t *testing.T) {
	// A memo whose payload contains the 0x74 TxnSignature tag byte must not be
	// mistaken for a signature field.
	memoPayload := []byte{0x74, 0x02, 0xAA, 0xBB}
	memos := []byte{0xF9, 0xEA}
	memos = append(memos, blobField(0x7D, memoPayload)...)
	memos = append(memos, 0xE1, 0xF1)
	blob := append(blobField(0x73, bytes.Repeat([]byte{0x02}, 33)), memos...)

	unsigned, err := ReconstructUnsigned(hex.EncodeToString(blob))
	require.NoError(t, err)
	assert.Equal(t, append(SigningPrefix[:], blob...), unsigned)
}

func TestReconstructUnsigned_ParseError(t *testing.T) {
	_, err := ReconstructUnsigned("73210")
	require.Error(t, err)
	assert.True(t, verifyerr.IsParse(err))

	_, err = SigningHash("7321FF")
	require.Error(t, err)
	assert.True(t, verifyerr.IsParse(err))
}
