// Package sigverify verifies XRPL-style signatures and recovers secp256k1
// public keys from detached DER signatures.
//
// The algorithm is chosen by the 33-byte public key encoding: a 0xED prefix
// selects Ed25519, 0x02 or 0x03 selects ECDSA over secp256k1. Verification
// never returns an error or panics; anything malformed is simply not a valid
// signature.
package sigverify
