package bytecode

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Program is a string pool plus the instruction stream that refers to it.
// It is the unit that is serialized for storage or transport.
type Program struct {
	// String pool, referenced by LoadString.Index. Entries are not deduplicated.
	Strings []string

	// Code section. Entries must not be nil.
	Code []Instruction
}

// NewProgram creates a new empty program.
func NewProgram() *Program {
	return &Program{
		Strings: make([]string, 0, 8),
		Code:    make([]Instruction, 0, 64),
	}
}

// AddString appends s to the string pool and returns its index.
func (p *Program) AddString(s string) uint32 {
	idx := uint32(len(p.Strings))
	p.Strings = append(p.Strings, s)
	return idx
}

// StringAt returns the pool entry at index.
func (p *Program) StringAt(index uint32) (string, bool) {
	if int64(index) >= int64(len(p.Strings)) {
		return "", false
	}
	return p.Strings[index], true
}

// Emit appends an instruction to the code section and returns its address.
func (p *Program) Emit(inst Instruction) Address {
	addr := Address(len(p.Code))
	p.Code = append(p.Code, inst)
	return addr
}

// Len returns the number of instructions in the code section.
func (p *Program) Len() int {
	return len(p.Code)
}

// Serialize encodes the program to bytes.
// Format (all integers big-endian):
//
//	[string_count:4]
//	[len:4] [chars:len] ...   (string_count times)
//	[op:1] [w1:4] [w2:4] [w3:4] ...   (until end of buffer)
//
// String lengths count characters, and each character is written as its
// low byte. Characters above U+00FF do not survive a round trip.
func (p *Program) Serialize() []byte {
	size := 4 + len(p.Code)*RecordSize
	for _, s := range p.Strings {
		size += 4 + len(s)
	}
	buf := make([]byte, 0, size)

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(p.Strings)))
	for _, s := range p.Strings {
		buf = binary.BigEndian.AppendUint32(buf, uint32(utf8.RuneCountInString(s)))
		for _, r := range s {
			buf = append(buf, byte(r))
		}
	}

	for _, inst := range p.Code {
		buf = Encode(inst).AppendTo(buf)
	}
	return buf
}

// ParseProgram decodes a serialized program using SubOpcodeCorrected.
func ParseProgram(data []byte) (*Program, error) {
	return defaultDecoder.ParseProgram(data)
}

// ParseProgram decodes a serialized program. It returns no partial program
// on error.
func (d Decoder) ParseProgram(data []byte) (*Program, error) {
	pr := programReader{data: data}

	count, err := pr.readUint32()
	if err != nil {
		return nil, fmt.Errorf("reading string count: %w", err)
	}

	// Every entry needs at least its length prefix.
	if uint64(count)*4 > uint64(pr.remaining()) {
		return nil, fmt.Errorf("%w: %d strings declared, %d bytes remain", ErrInsufficientBytes, count, pr.remaining())
	}

	p := &Program{Strings: make([]string, 0, count)}
	for i := uint32(0); i < count; i++ {
		s, err := pr.readString()
		if err != nil {
			return nil, fmt.Errorf("reading string %d: %w", i, err)
		}
		p.Strings = append(p.Strings, s)
	}

	p.Code = make([]Instruction, 0, pr.remaining()/RecordSize)
	for pr.remaining() > 0 {
		idx := len(p.Code)
		rec, err := ReadRecord(pr.data[pr.offset:])
		if err != nil {
			return nil, fmt.Errorf("reading instruction %d: %w", idx, err)
		}
		pr.offset += RecordSize

		inst, err := d.Decode(rec)
		if err != nil {
			return nil, fmt.Errorf("decoding instruction %d: %w", idx, err)
		}
		p.Code = append(p.Code, inst)
	}

	return p, nil
}

// programReader tracks the read position within a serialized program.
type programReader struct {
	data   []byte
	offset int
}

func (pr *programReader) remaining() int {
	return len(pr.data) - pr.offset
}

func (pr *programReader) readUint32() (uint32, error) {
	if pr.remaining() < 4 {
		return 0, fmt.Errorf("%w: need 4 bytes at offset %d, have %d", ErrInsufficientBytes, pr.offset, pr.remaining())
	}
	v := binary.BigEndian.Uint32(pr.data[pr.offset:])
	pr.offset += 4
	return v, nil
}

// readString reads a [length:4 | one byte per character] entry.
func (pr *programReader) readString() (string, error) {
	n, err := pr.readUint32()
	if err != nil {
		return "", err
	}
	if uint64(n) > uint64(pr.remaining()) {
		return "", fmt.Errorf("%w: string of %d bytes at offset %d, have %d", ErrInsufficientBytes, n, pr.offset, pr.remaining())
	}

	raw := pr.data[pr.offset : pr.offset+int(n)]
	pr.offset += int(n)

	var sb strings.Builder
	sb.Grow(len(raw))
	for _, b := range raw {
		sb.WriteRune(rune(b))
	}
	return sb.String(), nil
}
