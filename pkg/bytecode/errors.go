package bytecode

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrInsufficientBytes = errors.New("insufficient bytes")
)

// BinaryOperationError reports an opcode in the binary sub-range whose
// sub-operation code is unknown. Base+Code is the offending opcode byte.
type BinaryOperationError struct {
	Base Opcode
	Code uint8
}

func (e *BinaryOperationError) Error() string {
	return fmt.Sprintf("invalid binary operation 0x%02x + 0x%02x", byte(e.Base), e.Code)
}

func (e *BinaryOperationError) Unwrap() error {
	return ErrInvalidOperation
}

// UnaryOperationError reports an opcode in the unary sub-range whose
// sub-operation code is unknown. Base+Code is the offending opcode byte.
type UnaryOperationError struct {
	Base Opcode
	Code uint8
}

func (e *UnaryOperationError) Error() string {
	return fmt.Sprintf("invalid unary operation 0x%02x + 0x%02x", byte(e.Base), e.Code)
}

func (e *UnaryOperationError) Unwrap() error {
	return ErrInvalidOperation
}
