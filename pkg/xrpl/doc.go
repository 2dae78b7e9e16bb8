// Package xrpl implements the small part of the XRP Ledger binary format and
// address scheme needed to check a signed SignIn transaction.
//
// It covers three steps:
//
//   - parsing a hex-encoded signed transaction into its ordered fields
//     (ExtractFields), keeping the raw bytes of every field;
//   - rebuilding the exact bytes that were signed (ReconstructUnsigned), which
//     is the "STX\0" prefix followed by every field except TxnSignature;
//   - hashing and address derivation (SHA512Half, AccountID, EncodeAddress).
//
// Quick start:
//
//	fields, err := xrpl.ExtractFields(signedHex)
//	if err != nil {
//	    return err // verifyerr.IsParse(err) is true
//	}
//	digest := xrpl.SHA512Half(fields.UnsignedBytes())
//	address, err := xrpl.AddressFromPublicKey(fields.SigningPubKey())
//
// Everything here is a pure function of its arguments and safe for
// concurrent use.
package xrpl
