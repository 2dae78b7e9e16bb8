// Package verifyerr defines the error kinds shared by the verification packages.
//
// Three kinds exist:
//
//   - Input: the caller supplied something structurally unusable (bad hex,
//     wrong lengths, missing challenge). Reported before any cryptography runs.
//   - Parse: a binary transaction blob could not be decoded.
//   - Crypto: a primitive was handed material it cannot work with, such as a
//     DER signature that does not parse when recovery needs it.
//
// A signature that is well formed but does not verify is never an error; it
// is reported through the boolean fields of the verification result.
package verifyerr

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a verification error.
type Kind int

const (
	KindInput Kind = iota + 1
	KindParse
	KindCrypto
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindParse:
		return "parse"
	case KindCrypto:
		return "crypto"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by the verification packages.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "xrpl.ExtractFields"
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Input builds an input error. The message is formatted like fmt.Sprintf.
func Input(op, format string, args ...interface{}) error {
	return &Error{Kind: KindInput, Op: op, Err: pkgerrors.Errorf(format, args...)}
}

// Parse builds a parse error.
func Parse(op, format string, args ...interface{}) error {
	return &Error{Kind: KindParse, Op: op, Err: pkgerrors.Errorf(format, args...)}
}

// Crypto builds a cryptographic-primitive error.
func Crypto(op, format string, args ...interface{}) error {
	return &Error{Kind: KindCrypto, Op: op, Err: pkgerrors.Errorf(format, args...)}
}

// Wrap attaches a kind to an existing error. A nil err yields nil.
func Wrap(kind Kind, op string, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: pkgerrors.Wrap(err, msg)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return 0
}

func IsInput(err error) bool  { return KindOf(err) == KindInput }
func IsParse(err error) bool  { return KindOf(err) == KindParse }
func IsCrypto(err error) bool { return KindOf(err) == KindCrypto }
