package bytecode

// Instruction is one decoded register VM instruction.
// The set of implementations is closed; all of them are comparable values.
type Instruction interface {
	// Opcode returns the opcode this instruction encodes to.
	Opcode() Opcode

	isInstruction()
}

// None does nothing.
type None struct{}

// Halt stops execution.
type Halt struct{}

// Jump transfers control to Addr.
type Jump struct {
	Addr Locator
}

// JumpIf transfers control to Addr when register Cond is truthy.
type JumpIf struct {
	Cond Register
	Addr Locator
}

// LoadString loads string pool entry Index into Dst.
type LoadString struct {
	Dst   Register
	Index uint32
}

// LoadInt loads a 64-bit integer constant into Dst.
type LoadInt struct {
	Dst   Register
	Value uint64
}

// LoadFloat loads a 64-bit float constant into Dst.
type LoadFloat struct {
	Dst   Register
	Value float64
}

// LoadBool loads a boolean constant into Dst.
type LoadBool struct {
	Dst   Register
	Value bool
}

// Move copies Src into Dst.
type Move struct {
	Dst Register
	Src Register
}

// Field loads field number Field of the object in Src into Dst.
type Field struct {
	Dst   Register
	Src   Register
	Field uint32
}

// Call invokes Addr with Args arguments and stores the result in Dst.
type Call struct {
	Addr Locator
	Args uint32
	Dst  Register
}

// Binary stores Left <Op> Right into Dst.
type Binary struct {
	Op    BinaryOperation
	Dst   Register
	Left  Register
	Right Register
}

// Unary stores <Op> Right into Dst.
type Unary struct {
	Op    UnaryOperation
	Dst   Register
	Right Register
}

func (None) Opcode() Opcode       { return OpNone }
func (Halt) Opcode() Opcode       { return OpHalt }
func (LoadString) Opcode() Opcode { return OpString }
func (LoadInt) Opcode() Opcode    { return OpInt }
func (LoadFloat) Opcode() Opcode  { return OpFloat }
func (LoadBool) Opcode() Opcode   { return OpBool }
func (Move) Opcode() Opcode       { return OpMove }
func (Field) Opcode() Opcode      { return OpField }

func (i Jump) Opcode() Opcode {
	if i.Addr.IsRegister() {
		return OpJumpReg
	}
	return OpJump
}

func (i JumpIf) Opcode() Opcode {
	if i.Addr.IsRegister() {
		return OpJumpIfReg
	}
	return OpJumpIf
}

func (i Call) Opcode() Opcode {
	if i.Addr.IsRegister() {
		return OpCallReg
	}
	return OpCall
}

func (i Binary) Opcode() Opcode { return OpBinary + Opcode(i.Op.Code()) }
func (i Unary) Opcode() Opcode  { return OpUnary + Opcode(i.Op.Code()) }

func (None) isInstruction()       {}
func (Halt) isInstruction()       {}
func (Jump) isInstruction()       {}
func (JumpIf) isInstruction()     {}
func (LoadString) isInstruction() {}
func (LoadInt) isInstruction()    {}
func (LoadFloat) isInstruction()  {}
func (LoadBool) isInstruction()   {}
func (Move) isInstruction()       {}
func (Field) isInstruction()      {}
func (Call) isInstruction()       {}
func (Binary) isInstruction()     {}
func (Unary) isInstruction()      {}
