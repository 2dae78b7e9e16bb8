package xrpl

// SigningPrefix is prepended to a transaction before single-signing ("STX\0").
var SigningPrefix = [4]byte{0x53, 0x54, 0x58, 0x00}

// ReconstructUnsigned rebuilds the exact bytes that were hashed and signed:
// SigningPrefix followed by every top-level field of the blob, in original
// order, except TxnSignature.
func ReconstructUnsigned(blobHex string) ([]byte, error) {
	tf, err := ExtractFields(blobHex)
	if err != nil {
		return nil, err
	}
	return tf.UnsignedBytes(), nil
}

// UnsignedBytes is ReconstructUnsigned for an already parsed blob.
func (tf *TransactionFields) UnsignedBytes() []byte {
	size := len(SigningPrefix)
	for _, f := range tf.Fields {
		size += len(f.Raw)
	}
	out := make([]byte, 0, size)
	out = append(out, SigningPrefix[:]...)
	for _, f := range tf.Fields {
		if f.ID == FieldTxnSignature {
			continue
		}
		out = append(out, f.Raw...)
	}
	return out
}

// SigningHash returns SHA512Half of the reconstructed unsigned blob.
func SigningHash(blobHex string) (Digest, error) {
	unsigned, err := ReconstructUnsigned(blobHex)
	if err != nil {
		return Digest{}, err
	}
	return SHA512Half(unsigned), nil
}
