// Package walletverify checks that a wallet address signed a challenge.
//
// Each supported wallet has a Strategy that knows how its signature data is
// encoded and how to reach a verdict from it. Every strategy reports the
// same three independent checks:
//
//   - AddressValid: the key behind the signature belongs to ExpectedAddress;
//   - ChallengeValid: the signed message is the expected challenge;
//   - SignatureValid: the signature verifies under that key.
//
// A login is accepted only when all three hold (VerificationResult.IsValid).
//
// Quick start:
//
//	wt, err := walletverify.ParseWalletType("xaman")
//	if err != nil {
//	    return err
//	}
//	challenge := "example.com:1760021404:3f1c...:login:rnyBz..."
//	result, err := walletverify.NewStrategy(wt).Verify(ctx, &walletverify.VerificationInput{
//	    SignatureData:   signedBlobHex,
//	    ExpectedAddress: "rnyBzMHbmJMzzhk4NoyyuqKzsahfHFiARa",
//	    Challenge:       &challenge,
//	})
//	if err != nil {
//	    return err // malformed input; see verifyerr.KindOf
//	}
//	if !result.IsValid() {
//	    return errLoginRejected
//	}
//
// Malformed input is returned as a *verifyerr.Error. A well formed signature
// that does not check out is not an error; it shows up in the result flags.
//
// For many records at once, Client.VerifyBatch runs strategies on a bounded
// worker pool and reads records from JSON, YAML or CSV files.
//
// Challenge freshness (timestamps, replay) is the caller's job.
package walletverify
