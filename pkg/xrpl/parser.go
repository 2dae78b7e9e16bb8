package xrpl

import (
	"encoding/hex"
	"strings"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

// maxNestingDepth bounds STObject/STArray recursion on hostile input.
const maxNestingDepth = 32

var fixedWidths = map[int]int{
	TypeUInt8:   1,
	TypeUInt16:  2,
	TypeUInt32:  4,
	TypeUInt64:  8,
	TypeHash128: 16,
	TypeHash160: 20,
	TypeHash192: 24,
	TypeHash256: 32,
}

// Amount encodings, selected by the first byte.
const (
	amountIssuedFlag = 0x80
	amountMPTFlag    = 0x20

	nativeAmountWidth = 8
	mptAmountWidth    = 33
	issuedAmountWidth = 48
)

// Path step flags inside a PathSet.
const (
	pathStepAccount  = 0x01
	pathStepCurrency = 0x10
	pathStepIssuer   = 0x20
	pathBoundary     = 0xFF
	pathSetEnd       = 0x00
)

// ExtractFields decodes a hex-encoded signed transaction into its ordered
// top-level fields. Upper- and lower-case hex are accepted, with or without
// a 0x prefix.
func ExtractFields(blobHex string) (*TransactionFields, error) {
	data, err := DecodeHex(blobHex)
	if err != nil {
		return nil, err
	}
	return ParseFields(data)
}

// ParseFields decodes raw transaction bytes.
func ParseFields(data []byte) (*TransactionFields, error) {
	if len(data) == 0 {
		return nil, verifyerr.Parse("xrpl.ParseFields", "empty transaction blob")
	}
	p := &fieldParser{buf: data}
	tf := &TransactionFields{}
	for p.pos < len(p.buf) {
		if b := p.buf[p.pos]; b == objectEndMarker || b == arrayEndMarker {
			return nil, p.errorf("unexpected end marker 0x%02X at top level", b)
		}
		f, err := p.field(0)
		if err != nil {
			return nil, err
		}
		tf.Fields = append(tf.Fields, f)
	}
	return tf, nil
}

// DecodeHex decodes a hex string case-insensitively. Odd lengths and
// non-hex characters are parse errors.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 != 0 {
		return nil, verifyerr.Parse("xrpl.DecodeHex", "odd-length hex string (%d characters)", len(s))
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, verifyerr.Wrap(verifyerr.KindParse, "xrpl.DecodeHex", err, "invalid hex")
	}
	return data, nil
}

type fieldParser struct {
	buf []byte
	pos int
}

func (p *fieldParser) errorf(format string, args ...interface{}) error {
	args = append(args, p.pos)
	return verifyerr.Parse("xrpl.ParseFields", format+" (offset %d)", args...)
}

func (p *fieldParser) need(n int) error {
	if n < 0 || len(p.buf)-p.pos < n {
		return p.errorf("truncated input: need %d bytes, have %d", n, len(p.buf)-p.pos)
	}
	return nil
}

func (p *fieldParser) readByte() (byte, error) {
	if err := p.need(1); err != nil {
		return 0, err
	}
	b := p.buf[p.pos]
	p.pos++
	return b, nil
}

func (p *fieldParser) skip(n int) error {
	if err := p.need(n); err != nil {
		return err
	}
	p.pos += n
	return nil
}

// fieldID reads a 1-3 byte field header.
func (p *fieldParser) fieldID() (FieldID, error) {
	b, err := p.readByte()
	if err != nil {
		return FieldID{}, err
	}
	id := FieldID{Type: int(b >> 4), Field: int(b & 0x0f)}
	if id.Type == 0 {
		t, err := p.readByte()
		if err != nil {
			return FieldID{}, err
		}
		if t < 16 {
			return FieldID{}, p.errorf("non-canonical type code %d", t)
		}
		id.Type = int(t)
	}
	if id.Field == 0 {
		f, err := p.readByte()
		if err != nil {
			return FieldID{}, err
		}
		if f < 16 {
			return FieldID{}, p.errorf("non-canonical field code %d", f)
		}
		id.Field = int(f)
	}
	return id, nil
}

// vlLength reads a variable-length prefix.
func (p *fieldParser) vlLength() (int, error) {
	b1, err := p.readByte()
	if err != nil {
		return 0, err
	}
	switch {
	case b1 <= 192:
		return int(b1), nil
	case b1 <= 240:
		b2, err := p.readByte()
		if err != nil {
			return 0, err
		}
		return 193 + int(b1-193)*256 + int(b2), nil
	case b1 <= 254:
		if err := p.need(2); err != nil {
			return 0, err
		}
		b2, b3 := p.buf[p.pos], p.buf[p.pos+1]
		p.pos += 2
		return 12481 + int(b1-241)*65536 + int(b2)*256 + int(b3), nil
	default:
		return 0, p.errorf("invalid length prefix 0x%02X", b1)
	}
}

func (p *fieldParser) field(depth int) (Field, error) {
	if depth > maxNestingDepth {
		return Field{}, p.errorf("nesting deeper than %d levels", maxNestingDepth)
	}
	start := p.pos
	id, err := p.fieldID()
	if err != nil {
		return Field{}, err
	}

	f := Field{ID: id}
	payloadStart := p.pos
	payloadEnd := -1

	switch id.Type {
	case TypeBlob, TypeAccountID, TypeVector256:
		n, err := p.vlLength()
		if err != nil {
			return Field{}, err
		}
		payloadStart = p.pos
		if err := p.skip(n); err != nil {
			return Field{}, p.errorf("%s length %d exceeds remaining buffer", id, n)
		}
	case TypeAmount:
		if err := p.need(1); err != nil {
			return Field{}, err
		}
		width := nativeAmountWidth
		switch b := p.buf[p.pos]; {
		case b&amountIssuedFlag != 0:
			width = issuedAmountWidth
		case b&amountMPTFlag != 0:
			width = mptAmountWidth
		}
		if err := p.skip(width); err != nil {
			return Field{}, err
		}
	case TypeIssue:
		if err := p.need(20); err != nil {
			return Field{}, err
		}
		width := 20
		for _, c := range p.buf[p.pos : p.pos+20] {
			if c != 0 {
				width = 40
				break
			}
		}
		if err := p.skip(width); err != nil {
			return Field{}, err
		}
	case TypeSTObject:
		f.Nested, payloadEnd, err = p.container(depth, objectEndMarker)
		if err != nil {
			return Field{}, err
		}
	case TypeSTArray:
		f.Nested, payloadEnd, err = p.container(depth, arrayEndMarker)
		if err != nil {
			return Field{}, err
		}
	case TypePathSet:
		if err := p.pathSet(); err != nil {
			return Field{}, err
		}
		payloadEnd = p.pos - 1
	default:
		width, ok := fixedWidths[id.Type]
		if !ok {
			return Field{}, p.errorf("unsupported type code %d in %s", id.Type, id)
		}
		if err := p.skip(width); err != nil {
			return Field{}, err
		}
	}

	if payloadEnd < 0 {
		payloadEnd = p.pos
	}
	f.Raw = p.buf[start:p.pos]
	f.Payload = p.buf[payloadStart:payloadEnd]
	return f, nil
}

// container decodes members until the end marker and consumes it. It returns
// the offset of the marker so the payload excludes it.
func (p *fieldParser) container(depth int, end byte) ([]Field, int, error) {
	var members []Field
	for {
		if err := p.need(1); err != nil {
			return nil, 0, p.errorf("missing end marker 0x%02X", end)
		}
		if p.buf[p.pos] == end {
			markerAt := p.pos
			p.pos++
			return members, markerAt, nil
		}
		m, err := p.field(depth + 1)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
}

func (p *fieldParser) pathSet() error {
	for {
		b, err := p.readByte()
		if err != nil {
			return err
		}
		switch b {
		case pathSetEnd:
			return nil
		case pathBoundary:
			continue
		}
		if b&^(pathStepAccount|pathStepCurrency|pathStepIssuer) != 0 {
			return p.errorf("invalid path step flags 0x%02X", b)
		}
		for _, flag := range []byte{pathStepAccount, pathStepCurrency, pathStepIssuer} {
			if b&flag != 0 {
				if err := p.skip(20); err != nil {
					return err
				}
			}
		}
	}
}
