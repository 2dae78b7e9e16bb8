package xrpl

import "fmt"

// PublicKeyLength is the size of an XRPL signing public key: a compressed
// secp256k1 point, or 0xED followed by a 32-byte Ed25519 key.
const PublicKeyLength = 33

// Ed25519Prefix marks a 32-byte Ed25519 key stored in a 33-byte slot.
const Ed25519Prefix = 0xED

// Serialized type codes understood by the parser.
const (
	TypeUInt16    = 1
	TypeUInt32    = 2
	TypeUInt64    = 3
	TypeHash128   = 4
	TypeHash256   = 5
	TypeAmount    = 6
	TypeBlob      = 7
	TypeAccountID = 8
	TypeSTObject  = 14
	TypeSTArray   = 15
	TypeUInt8     = 16
	TypeHash160   = 17
	TypePathSet   = 18
	TypeVector256 = 19
	TypeHash192   = 21
	TypeIssue     = 24
)

// Markers closing nested containers.
const (
	objectEndMarker = 0xE1
	arrayEndMarker  = 0xF1
)

// FieldID identifies a serialized field by its type and field codes.
type FieldID struct {
	Type  int
	Field int
}

func (id FieldID) String() string {
	if name, ok := fieldNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d,%d)", id.Type, id.Field)
}

// Fields the verifier cares about.
var (
	FieldSigningPubKey = FieldID{TypeBlob, 3}
	FieldTxnSignature  = FieldID{TypeBlob, 4}
	FieldMemoType      = FieldID{TypeBlob, 12}
	FieldMemoData      = FieldID{TypeBlob, 13}
	FieldMemoFormat    = FieldID{TypeBlob, 14}
	FieldAccount       = FieldID{TypeAccountID, 1}
	FieldMemo          = FieldID{TypeSTObject, 10}
	FieldMemos         = FieldID{TypeSTArray, 9}
)

var fieldNames = map[FieldID]string{
	FieldSigningPubKey: "SigningPubKey",
	FieldTxnSignature:  "TxnSignature",
	FieldMemoType:      "MemoType",
	FieldMemoData:      "MemoData",
	FieldMemoFormat:    "MemoFormat",
	FieldAccount:       "Account",
	FieldMemo:          "Memo",
	FieldMemos:         "Memos",
	{TypeUInt16, 2}:    "TransactionType",
	{TypeUInt32, 2}:    "Flags",
	{TypeUInt32, 4}:    "Sequence",
	{TypeAmount, 8}:    "Fee",
}

// Field is one decoded field. Raw holds the exact header, length prefix and
// payload bytes as they appeared in the blob; Payload is the value without
// header or length prefix. Nested holds the decoded members of STObject and
// STArray fields.
type Field struct {
	ID      FieldID
	Raw     []byte
	Payload []byte
	Nested  []Field
}

// TransactionFields is the ordered set of top-level fields of a signed blob.
type TransactionFields struct {
	Fields []Field
}

// Find returns the first top-level field with the given id.
func (tf *TransactionFields) Find(id FieldID) (Field, bool) {
	for _, f := range tf.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// SigningPubKey returns the SigningPubKey payload, or nil if absent.
func (tf *TransactionFields) SigningPubKey() []byte {
	f, _ := tf.Find(FieldSigningPubKey)
	return f.Payload
}

// TxnSignature returns the TxnSignature payload, or nil if absent.
func (tf *TransactionFields) TxnSignature() []byte {
	f, _ := tf.Find(FieldTxnSignature)
	return f.Payload
}

// Account returns the Account field's 20-byte id.
func (tf *TransactionFields) Account() ([20]byte, bool) {
	var id [20]byte
	f, ok := tf.Find(FieldAccount)
	if !ok || len(f.Payload) != len(id) {
		return id, false
	}
	copy(id[:], f.Payload)
	return id, true
}

// MemoData returns the payload of the first MemoData inside Memos, or nil.
func (tf *TransactionFields) MemoData() []byte {
	memos, ok := tf.Find(FieldMemos)
	if !ok {
		return nil
	}
	for _, memo := range memos.Nested {
		if memo.ID != FieldMemo {
			continue
		}
		for _, member := range memo.Nested {
			if member.ID == FieldMemoData {
				return member.Payload
			}
		}
	}
	return nil
}
