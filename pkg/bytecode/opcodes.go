package bytecode

import "fmt"

// Opcode is the first byte of an instruction record.
// Opcodes are organized into ranges by category for easy identification.
type Opcode byte

const (
	// ========================================================================
	// Control flow (0x00-0x0F)
	// ========================================================================

	OpNone      Opcode = 0x00 // No operation
	OpHalt      Opcode = 0x01 // Stop execution
	OpJump      Opcode = 0x02 // Jump to literal address: (0, addr, 0)
	OpJumpReg   Opcode = 0x03 // Jump to address held in register: (0, reg, 0)
	OpJumpIf    Opcode = 0x04 // Conditional jump to literal address: (cond, addr, 0)
	OpJumpIfReg Opcode = 0x05 // Conditional jump to address in register: (cond, reg, 0)

	// ========================================================================
	// Constant loads (0x10-0x1F)
	// ========================================================================

	OpString Opcode = 0x10 // Load string pool entry: (dst, index, 0)
	OpInt    Opcode = 0x11 // Load 64-bit integer: (dst, low, high)
	OpFloat  Opcode = 0x12 // Load 64-bit float bits: (dst, low, high)
	OpBool   Opcode = 0x13 // Load boolean: (dst, 0|1, 0)

	// ========================================================================
	// Data movement and calls (0x20-0x2F)
	// ========================================================================

	OpMove    Opcode = 0x20 // Copy register: (dst, src, 0)
	OpField   Opcode = 0x21 // Load field of object: (dst, src, field)
	OpCall    Opcode = 0x22 // Call literal address: (addr, args, dst)
	OpCallReg Opcode = 0x23 // Call address held in register: (reg, args, dst)

	// ========================================================================
	// Binary arithmetic (0x30-0x3F) - base plus BinaryOperation code
	// ========================================================================

	OpBinary Opcode = 0x30
	OpAdd    Opcode = OpBinary + Opcode(Add)
	OpSub    Opcode = OpBinary + Opcode(Sub)
	OpDiv    Opcode = OpBinary + Opcode(Div)
	OpMul    Opcode = OpBinary + Opcode(Mul)

	// ========================================================================
	// Unary arithmetic (0x40-0x4F) - base plus UnaryOperation code
	// ========================================================================

	OpUnary Opcode = 0x40
	OpNeg   Opcode = OpUnary + Opcode(Neg)
)

// Sub-range bounds. A byte inside a sub-range selects Binary or Unary even
// when its sub-operation code is unknown.
const (
	binaryRangeEnd Opcode = 0x3F
	unaryRangeEnd  Opcode = 0x4F
)

// OpcodeInfo provides metadata about each opcode for debugging and logging.
type OpcodeInfo struct {
	Name  string // Human-readable name
	Words int    // Number of operand words the instruction uses
}

var opcodeInfoTable = map[Opcode]OpcodeInfo{
	// Control flow
	OpNone:      {"NONE", 0},
	OpHalt:      {"HALT", 0},
	OpJump:      {"JUMP", 1},
	OpJumpReg:   {"JUMP_REG", 1},
	OpJumpIf:    {"JUMP_IF", 2},
	OpJumpIfReg: {"JUMP_IF_REG", 2},

	// Constants
	OpString: {"STRING", 2},
	OpInt:    {"INT", 3},
	OpFloat:  {"FLOAT", 3},
	OpBool:   {"BOOL", 2},

	// Data movement
	OpMove:    {"MOVE", 2},
	OpField:   {"FIELD", 3},
	OpCall:    {"CALL", 3},
	OpCallReg: {"CALL_REG", 3},

	// Arithmetic
	OpAdd: {"ADD", 3},
	OpSub: {"SUB", 3},
	OpDiv: {"DIV", 3},
	OpMul: {"MUL", 3},
	OpNeg: {"NEG", 2},
}

// GetOpcodeInfo returns metadata for an opcode.
// Returns a zero OpcodeInfo with name "UNKNOWN" if the opcode is not recognized.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(0x%02X)", byte(op))}
}

// String returns the human-readable name of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// Words returns the number of operand words the instruction uses.
// Encoding leaves the remaining trailing words zero.
func (op Opcode) Words() int {
	return GetOpcodeInfo(op).Words
}

// Known reports whether op decodes to an instruction in the corrected mode.
func (op Opcode) Known() bool {
	_, ok := opcodeInfoTable[op]
	return ok
}

// IsJump returns true if this opcode is a jump instruction.
func (op Opcode) IsJump() bool {
	return op >= OpJump && op <= OpJumpIfReg
}

// IsCall returns true if this opcode is a call instruction.
func (op Opcode) IsCall() bool {
	return op == OpCall || op == OpCallReg
}

// IsBinary returns true if op falls in the binary arithmetic sub-range.
func (op Opcode) IsBinary() bool {
	return op >= OpBinary && op <= binaryRangeEnd
}

// IsUnary returns true if op falls in the unary arithmetic sub-range.
func (op Opcode) IsUnary() bool {
	return op >= OpUnary && op <= unaryRangeEnd
}

// AllOpcodes returns a slice of all defined opcodes.
func AllOpcodes() []Opcode {
	opcodes := make([]Opcode, 0, len(opcodeInfoTable))
	for op := range opcodeInfoTable {
		opcodes = append(opcodes, op)
	}
	return opcodes
}

// OpcodeCount returns the number of defined opcodes.
func OpcodeCount() int {
	return len(opcodeInfoTable)
}
