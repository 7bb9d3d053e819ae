package bytecode

import "fmt"

// BinaryOperation selects the arithmetic performed by a Binary instruction.
type BinaryOperation uint8

const (
	Add BinaryOperation = 0
	Sub BinaryOperation = 1
	Div BinaryOperation = 2
	Mul BinaryOperation = 3
)

// Code returns the sub-operation code added to OpBinary.
func (op BinaryOperation) Code() uint8 {
	return uint8(op)
}

// String returns the lowercase name of the operation.
func (op BinaryOperation) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Div:
		return "div"
	case Mul:
		return "mul"
	default:
		return fmt.Sprintf("BinaryOperation(%d)", uint8(op))
	}
}

// BinaryOperationFromCode maps a sub-operation code back to its operation.
func BinaryOperationFromCode(code uint8) (BinaryOperation, error) {
	switch BinaryOperation(code) {
	case Add, Sub, Div, Mul:
		return BinaryOperation(code), nil
	}
	return 0, &BinaryOperationError{Base: OpBinary, Code: code}
}

// UnaryOperation selects the operation performed by a Unary instruction.
type UnaryOperation uint8

const (
	Neg UnaryOperation = 0
)

// Code returns the sub-operation code added to OpUnary.
func (op UnaryOperation) Code() uint8 {
	return uint8(op)
}

// String returns the lowercase name of the operation.
func (op UnaryOperation) String() string {
	if op == Neg {
		return "neg"
	}
	return fmt.Sprintf("UnaryOperation(%d)", uint8(op))
}

// UnaryOperationFromCode maps a sub-operation code back to its operation.
func UnaryOperationFromCode(code uint8) (UnaryOperation, error) {
	if UnaryOperation(code) == Neg {
		return Neg, nil
	}
	return 0, &UnaryOperationError{Base: OpUnary, Code: code}
}
