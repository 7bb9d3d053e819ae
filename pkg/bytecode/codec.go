package bytecode

import (
	"encoding/binary"
	"fmt"
	"math"
)

// RecordSize is the encoded size of one instruction: opcode plus three words.
const RecordSize = 1 + 3*4

// Record is the fixed binary shape every instruction encodes to.
type Record struct {
	Op    Opcode
	Word1 uint32
	Word2 uint32
	Word3 uint32
}

// AppendTo appends the big-endian encoding of r to buf.
func (r Record) AppendTo(buf []byte) []byte {
	buf = append(buf, byte(r.Op))
	buf = binary.BigEndian.AppendUint32(buf, r.Word1)
	buf = binary.BigEndian.AppendUint32(buf, r.Word2)
	buf = binary.BigEndian.AppendUint32(buf, r.Word3)
	return buf
}

// ReadRecord reads one record from the start of data.
func ReadRecord(data []byte) (Record, error) {
	if len(data) < RecordSize {
		return Record{}, fmt.Errorf("%w: record needs %d bytes, have %d", ErrInsufficientBytes, RecordSize, len(data))
	}
	return Record{
		Op:    Opcode(data[0]),
		Word1: binary.BigEndian.Uint32(data[1:5]),
		Word2: binary.BigEndian.Uint32(data[5:9]),
		Word3: binary.BigEndian.Uint32(data[9:13]),
	}, nil
}

// SubOpcodeMode selects how Binary and Unary opcodes are split into a base
// and a sub-operation code when decoding. Encoding is the same in every mode.
type SubOpcodeMode uint8

const (
	// SubOpcodeCorrected subtracts OpBinary and OpUnary, so every encoded
	// instruction decodes back to itself.
	SubOpcodeCorrected SubOpcodeMode = iota

	// SubOpcodeLegacy subtracts 0x20 in both sub-ranges and reports unary
	// errors relative to 0x30, matching the format's first decoder. Under
	// this mode no Binary or Unary record decodes successfully.
	SubOpcodeLegacy
)

// String returns the configuration name of the mode.
func (m SubOpcodeMode) String() string {
	switch m {
	case SubOpcodeCorrected:
		return "corrected"
	case SubOpcodeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("SubOpcodeMode(%d)", m)
	}
}

// ParseSubOpcodeMode parses a mode name as written in configuration.
// The empty string selects SubOpcodeCorrected.
func ParseSubOpcodeMode(s string) (SubOpcodeMode, error) {
	switch s {
	case "", "corrected":
		return SubOpcodeCorrected, nil
	case "legacy":
		return SubOpcodeLegacy, nil
	default:
		return 0, fmt.Errorf("unknown sub-opcode mode %q", s)
	}
}

// Decoder turns records and program buffers back into instructions.
// The zero value decodes in SubOpcodeCorrected mode.
type Decoder struct {
	Mode SubOpcodeMode
}

var defaultDecoder Decoder

// Encode converts an instruction to its record. It panics on a nil Instruction.
func Encode(inst Instruction) Record {
	switch i := inst.(type) {
	case None:
		return Record{Op: OpNone}
	case Halt:
		return Record{Op: OpHalt}
	case Jump:
		return Record{Op: i.Opcode(), Word2: i.Addr.Value()}
	case JumpIf:
		return Record{Op: i.Opcode(), Word1: i.Cond, Word2: i.Addr.Value()}
	case LoadString:
		return Record{Op: OpString, Word1: i.Dst, Word2: i.Index}
	case LoadInt:
		lo, hi := splitWords(i.Value)
		return Record{Op: OpInt, Word1: i.Dst, Word2: lo, Word3: hi}
	case LoadFloat:
		lo, hi := splitWords(math.Float64bits(i.Value))
		return Record{Op: OpFloat, Word1: i.Dst, Word2: lo, Word3: hi}
	case LoadBool:
		var v uint32
		if i.Value {
			v = 1
		}
		return Record{Op: OpBool, Word1: i.Dst, Word2: v}
	case Move:
		return Record{Op: OpMove, Word1: i.Dst, Word2: i.Src}
	case Field:
		return Record{Op: OpField, Word1: i.Dst, Word2: i.Src, Word3: i.Field}
	case Call:
		return Record{Op: i.Opcode(), Word1: i.Addr.Value(), Word2: i.Args, Word3: i.Dst}
	case Binary:
		return Record{Op: i.Opcode(), Word1: i.Dst, Word2: i.Left, Word3: i.Right}
	case Unary:
		return Record{Op: i.Opcode(), Word1: i.Dst, Word2: i.Right}
	default:
		panic(fmt.Sprintf("bytecode: cannot encode %T", inst))
	}
}

// Decode converts a record to an instruction using SubOpcodeCorrected.
func Decode(r Record) (Instruction, error) {
	return defaultDecoder.Decode(r)
}

// Decode converts a record to an instruction. Words an instruction does
// not use are ignored.
func (d Decoder) Decode(r Record) (Instruction, error) {
	switch r.Op {
	case OpNone:
		return None{}, nil
	case OpHalt:
		return Halt{}, nil
	case OpJump:
		return Jump{Addr: AtAddress(r.Word2)}, nil
	case OpJumpReg:
		return Jump{Addr: FromRegister(r.Word2)}, nil
	case OpJumpIf:
		return JumpIf{Cond: r.Word1, Addr: AtAddress(r.Word2)}, nil
	case OpJumpIfReg:
		return JumpIf{Cond: r.Word1, Addr: FromRegister(r.Word2)}, nil

	case OpString:
		return LoadString{Dst: r.Word1, Index: r.Word2}, nil
	case OpInt:
		return LoadInt{Dst: r.Word1, Value: joinWords(r.Word2, r.Word3)}, nil
	case OpFloat:
		return LoadFloat{Dst: r.Word1, Value: math.Float64frombits(joinWords(r.Word2, r.Word3))}, nil
	case OpBool:
		return LoadBool{Dst: r.Word1, Value: r.Word2 != 0}, nil

	case OpMove:
		return Move{Dst: r.Word1, Src: r.Word2}, nil
	case OpField:
		return Field{Dst: r.Word1, Src: r.Word2, Field: r.Word3}, nil
	case OpCall:
		return Call{Addr: AtAddress(r.Word1), Args: r.Word2, Dst: r.Word3}, nil
	case OpCallReg:
		return Call{Addr: FromRegister(r.Word1), Args: r.Word2, Dst: r.Word3}, nil
	}

	switch {
	case r.Op.IsBinary():
		op, err := d.binaryOperation(r.Op)
		if err != nil {
			return nil, err
		}
		return Binary{Op: op, Dst: r.Word1, Left: r.Word2, Right: r.Word3}, nil
	case r.Op.IsUnary():
		op, err := d.unaryOperation(r.Op)
		if err != nil {
			return nil, err
		}
		return Unary{Op: op, Dst: r.Word1, Right: r.Word2}, nil
	}

	return nil, fmt.Errorf("%w: opcode 0x%02x", ErrInvalidOperation, byte(r.Op))
}

func (d Decoder) binaryOperation(op Opcode) (BinaryOperation, error) {
	if d.Mode == SubOpcodeLegacy {
		code := uint8(op - 0x20)
		if _, err := BinaryOperationFromCode(code); err == nil {
			return BinaryOperation(code), nil
		}
		return 0, &BinaryOperationError{Base: 0x20, Code: code}
	}
	return BinaryOperationFromCode(uint8(op - OpBinary))
}

func (d Decoder) unaryOperation(op Opcode) (UnaryOperation, error) {
	if d.Mode == SubOpcodeLegacy {
		if _, err := UnaryOperationFromCode(uint8(op - 0x20)); err == nil {
			return UnaryOperation(op - 0x20), nil
		}
		return 0, &UnaryOperationError{Base: 0x30, Code: uint8(op - 0x30)}
	}
	return UnaryOperationFromCode(uint8(op - OpUnary))
}

// splitWords splits v into its low and high 32-bit halves.
func splitWords(v uint64) (lo, hi uint32) {
	return uint32(v), uint32(v >> 32)
}

func joinWords(lo, hi uint32) uint64 {
	return uint64(lo) | uint64(hi)<<32
}
