// Package output renders verification results for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/walletverify"
)

const rule = "--------------------------------------------"

func mark(ok bool, good, bad string) string {
	if ok {
		return "✓ " + good
	}
	return "✗ " + bad
}

// PrintResult writes a human-readable report of a single verification.
func PrintResult(w io.Writer, wallet string, result *walletverify.VerificationResult, expectedAddress string, expectedChallenge *string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s Signature Verification\n", wallet)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Address:")
	fmt.Fprintf(w, "   Derived:  %s\n", result.DerivedAddress)
	fmt.Fprintf(w, "   Expected: %s\n", expectedAddress)
	fmt.Fprintf(w, "   Status:   %s\n", mark(result.AddressValid, "MATCH", "MISMATCH"))
	fmt.Fprintln(w)

	switch {
	case expectedChallenge == nil:
		fmt.Fprintln(w, "Challenge verification skipped (not provided)")
	case result.FoundChallenge == nil:
		fmt.Fprintln(w, "Challenge:")
		fmt.Fprintln(w, "   No challenge found in the signed data")
		fmt.Fprintf(w, "   Status:   %s\n", mark(result.ChallengeValid, "MATCH", "MISMATCH"))
	default:
		fmt.Fprintln(w, "Challenge:")
		fmt.Fprintf(w, "   Found:    %s\n", *result.FoundChallenge)
		fmt.Fprintf(w, "   Expected: %s\n", *expectedChallenge)
		fmt.Fprintf(w, "   Status:   %s\n", mark(result.ChallengeValid, "MATCH", "MISMATCH"))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Signature:")
	fmt.Fprintf(w, "   Status:   %s\n", mark(result.SignatureValid, "VALID", "INVALID"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)

	if result.IsValid() {
		fmt.Fprintln(w, "AUTHENTICATION SUCCESSFUL")
		fmt.Fprintf(w, "The holder of %s signed this challenge.\n", expectedAddress)
		return
	}
	fmt.Fprintln(w, "AUTHENTICATION FAILED")
	if !result.AddressValid {
		fmt.Fprintln(w, "  ✗ Address mismatch: the signing key does not belong to this address")
	}
	if !result.ChallengeValid {
		fmt.Fprintln(w, "  ✗ Challenge mismatch: possible replay")
	}
	if !result.SignatureValid {
		fmt.Fprintln(w, "  ✗ Cryptographic signature invalid")
	}
}

// PrintBatch writes one line per record followed by a summary, and returns
// the number of records that did not pass.
func PrintBatch(w io.Writer, results []*walletverify.BatchResult) int {
	failed := 0
	for _, r := range results {
		wallet := ""
		if r.Record != nil {
			wallet = r.Record.Wallet
		}
		switch {
		case r.Err != nil:
			failed++
			msg := strings.SplitN(r.Err.Error(), "\n", 2)[0]
			fmt.Fprintf(w, "[%d] %-14s ERROR    %s\n", r.Index, wallet, msg)
		case r.Result.IsValid():
			fmt.Fprintf(w, "[%d] %-14s VALID    %s\n", r.Index, wallet, r.Result.DerivedAddress)
		default:
			failed++
			fmt.Fprintf(w, "[%d] %-14s INVALID  address=%t challenge=%t signature=%t\n",
				r.Index, wallet, r.Result.AddressValid, r.Result.ChallengeValid, r.Result.SignatureValid)
		}
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%d records, %d valid, %d failed\n", len(results), len(results)-failed, failed)
	return failed
}

type jsonBatchResult struct {
	*walletverify.BatchResult
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// WriteJSON writes v as indented JSON. Batch results get their error text
// and overall validity inlined.
func WriteJSON(w io.Writer, v interface{}) error {
	if results, ok := v.([]*walletverify.BatchResult); ok {
		out := make([]jsonBatchResult, len(results))
		for i, r := range results {
			out[i] = jsonBatchResult{BatchResult: r, Valid: r.Valid()}
			if r.Err != nil {
				out[i].Error = r.Err.Error()
			}
		}
		v = out
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
