// Package wire carries bytecode programs as canonical CBOR, for transports
// that want a self-describing envelope instead of the raw program buffer.
package wire

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/chazu/regbc/pkg/bytecode"
	"github.com/fxamacker/cbor/v2"
)

// EnvelopeVersion is the current envelope format version.
const EnvelopeVersion uint16 = 1

var (
	// ErrUnsupportedVersion is returned for envelopes with a missing version
	// or one newer than EnvelopeVersion.
	ErrUnsupportedVersion = errors.New("wire: unsupported envelope version")

	// ErrInvalidString is returned by Marshal for pool entries that are not
	// valid UTF-8, which CBOR text cannot carry.
	ErrInvalidString = errors.New("wire: string is not valid UTF-8")
)

// Envelope is the CBOR form of a program. Strings travel as CBOR text, so
// unlike the raw buffer they are not truncated to one byte per character.
type Envelope struct {
	Version uint16   `cbor:"1,keyasint"`
	Strings []string `cbor:"2,keyasint,omitempty"`
	Code    []Record `cbor:"3,keyasint,omitempty"`
}

// Record is one instruction record, encoded as the array [op, w1, w2, w3].
type Record struct {
	_     struct{} `cbor:",toarray"`
	Op    uint8
	Word1 uint32
	Word2 uint32
	Word3 uint32
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// NewEnvelope builds the envelope for p.
func NewEnvelope(p *bytecode.Program) *Envelope {
	env := &Envelope{
		Version: EnvelopeVersion,
		Strings: p.Strings,
		Code:    make([]Record, len(p.Code)),
	}
	for i, inst := range p.Code {
		r := bytecode.Encode(inst)
		env.Code[i] = Record{Op: uint8(r.Op), Word1: r.Word1, Word2: r.Word2, Word3: r.Word3}
	}
	return env
}

// Program decodes the envelope's records with d.
func (env *Envelope) Program(d bytecode.Decoder) (*bytecode.Program, error) {
	if env.Version == 0 || env.Version > EnvelopeVersion {
		return nil, fmt.Errorf("%w: %d (supported %d)", ErrUnsupportedVersion, env.Version, EnvelopeVersion)
	}

	p := &bytecode.Program{
		Strings: append([]string{}, env.Strings...),
		Code:    make([]bytecode.Instruction, 0, len(env.Code)),
	}
	for i, r := range env.Code {
		inst, err := d.Decode(bytecode.Record{
			Op:    bytecode.Opcode(r.Op),
			Word1: r.Word1,
			Word2: r.Word2,
			Word3: r.Word3,
		})
		if err != nil {
			return nil, fmt.Errorf("wire: decoding instruction %d: %w", i, err)
		}
		p.Code = append(p.Code, inst)
	}
	return p, nil
}

// Marshal serializes a program to canonical CBOR bytes.
func Marshal(p *bytecode.Program) ([]byte, error) {
	for i, s := range p.Strings {
		if !utf8.ValidString(s) {
			return nil, fmt.Errorf("%w: string %d", ErrInvalidString, i)
		}
	}
	return cborEncMode.Marshal(NewEnvelope(p))
}

// Unmarshal deserializes a program from CBOR bytes using the default decoder.
func Unmarshal(data []byte) (*bytecode.Program, error) {
	return UnmarshalWith(data, bytecode.Decoder{})
}

// UnmarshalWith deserializes a program from CBOR bytes using d.
func UnmarshalWith(data []byte, d bytecode.Decoder) (*bytecode.Program, error) {
	var env Envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("wire: unmarshal program: %w", err)
	}
	return env.Program(d)
}
