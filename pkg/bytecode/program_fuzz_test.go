package bytecode

import (
	"errors"
	"testing"
)

// FuzzParseProgram checks that parsing never panics, that every failure is
// one of the codec errors, and that anything that parses survives a
// serialize and re-parse unchanged.
func FuzzParseProgram(f *testing.F) {
	f.Add((&Program{Strings: []string{"hi"}, Code: []Instruction{Halt{}}}).Serialize())
	f.Add([]byte{0, 0, 0, 0})
	f.Add([]byte{0, 0, 0})
	f.Add([]byte{0, 0, 0, 0, 0x34, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		p, err := ParseProgram(data)
		if err != nil {
			if !errors.Is(err, ErrInsufficientBytes) && !errors.Is(err, ErrInvalidOperation) {
				t.Fatalf("unexpected error type: %v", err)
			}
			return
		}

		again, err := ParseProgram(p.Serialize())
		if err != nil {
			t.Fatalf("re-parse failed: %v", err)
		}
		if len(again.Strings) != len(p.Strings) || len(again.Code) != len(p.Code) {
			t.Fatalf("re-parse changed shape: %d/%d strings, %d/%d instructions",
				len(again.Strings), len(p.Strings), len(again.Code), len(p.Code))
		}
		for i := range p.Strings {
			if again.Strings[i] != p.Strings[i] {
				t.Fatalf("string %d = %q, want %q", i, again.Strings[i], p.Strings[i])
			}
		}
		for i := range p.Code {
			if Encode(again.Code[i]) != Encode(p.Code[i]) {
				t.Fatalf("instruction %d changed: %#v vs %#v", i, again.Code[i], p.Code[i])
			}
		}
	})
}
