// Package bytecode defines the binary instruction format of a register VM
// and the program container that carries it.
//
// The package holds no interpreter. It converts between structured
// instructions and their wire form, and nothing else.
//
// # Records
//
// Every instruction encodes to a fixed 13-byte Record: one opcode byte
// followed by three big-endian 32-bit words. Opcodes are grouped by
// category:
//
//   - 0x00-0x05: control flow (None, Halt, Jump, JumpIf)
//   - 0x10-0x13: constant loads (string pool index, int, float, bool)
//   - 0x20-0x23: Move, Field and Call
//   - 0x30-0x3F: Binary, with the BinaryOperation code added to 0x30
//   - 0x40-0x4F: Unary, with the UnaryOperation code added to 0x40
//
// Jump, JumpIf and Call each take a Locator, and use a separate opcode for
// a literal address and for an address held in a register.
//
// 64-bit integer and float constants are split into two words, low word
// first. Floats travel as their exact IEEE-754 bit pattern.
//
// # Programs
//
// A serialized Program is a string count, the length-prefixed strings, and
// then records until the end of the buffer. There is no instruction count.
// Each string character is written as a single byte; characters above
// U+00FF are truncated.
//
// Encode and Program.Serialize never fail. Decode and ParseProgram return
// errors that match ErrInvalidOperation or ErrInsufficientBytes under
// errors.Is.
//
// # Sub-opcode modes
//
// The first decoder for this format split Binary and Unary opcodes at the
// wrong offset, so those records never decoded. Decoder.Mode keeps that
// behavior available as SubOpcodeLegacy; the default SubOpcodeCorrected
// decodes everything Encode produces.
package bytecode
