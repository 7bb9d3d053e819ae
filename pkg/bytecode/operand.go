package bytecode

import "fmt"

// Register is an index into the VM register file.
type Register = uint32

// Address is an offset into the instruction stream.
type Address = uint32

// LocatorKind tells whether a Locator holds a literal address or a register.
type LocatorKind uint8

const (
	// LocatorAddress marks a target known at compile time.
	LocatorAddress LocatorKind = iota

	// LocatorRegister marks a target read from a register at run time.
	LocatorRegister
)

// String returns a human-readable name for LocatorKind.
func (k LocatorKind) String() string {
	switch k {
	case LocatorAddress:
		return "address"
	case LocatorRegister:
		return "register"
	default:
		return fmt.Sprintf("LocatorKind(%d)", k)
	}
}

// Locator is the target operand of Jump, JumpIf and Call.
// The zero value is AtAddress(0).
type Locator struct {
	kind  LocatorKind
	value uint32
}

// AtAddress returns a Locator for a literal instruction address.
func AtAddress(addr Address) Locator {
	return Locator{kind: LocatorAddress, value: addr}
}

// FromRegister returns a Locator whose target is read from reg.
func FromRegister(reg Register) Locator {
	return Locator{kind: LocatorRegister, value: reg}
}

// Kind returns which case the locator holds.
func (l Locator) Kind() LocatorKind {
	return l.kind
}

// IsRegister reports whether the target is read from a register.
func (l Locator) IsRegister() bool {
	return l.kind == LocatorRegister
}

// Value returns the raw 32-bit operand, discarding the kind.
func (l Locator) Value() uint32 {
	return l.value
}

// String formats the locator as "@N" for an address or "rN" for a register.
func (l Locator) String() string {
	if l.kind == LocatorRegister {
		return fmt.Sprintf("r%d", l.value)
	}
	return fmt.Sprintf("@%d", l.value)
}
