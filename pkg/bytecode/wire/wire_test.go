package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/chazu/regbc/pkg/bytecode"
	"github.com/fxamacker/cbor/v2"
)

func testProgram() *bytecode.Program {
	p := bytecode.NewProgram()
	idx := p.AddString("greeting")
	p.AddString("世界")
	p.Emit(bytecode.LoadString{Dst: 0, Index: idx})
	p.Emit(bytecode.LoadInt{Dst: 1, Value: 0x1_0000_0002})
	p.Emit(bytecode.LoadFloat{Dst: 2, Value: -2.25})
	p.Emit(bytecode.Binary{Op: bytecode.Mul, Dst: 3, Left: 1, Right: 2})
	p.Emit(bytecode.Unary{Op: bytecode.Neg, Dst: 3, Right: 3})
	p.Emit(bytecode.Call{Addr: bytecode.FromRegister(4), Args: 1, Dst: 5})
	p.Emit(bytecode.JumpIf{Cond: 5, Addr: bytecode.AtAddress(0)})
	p.Emit(bytecode.Halt{})
	return p
}

func TestProgram_CBORRoundTrip(t *testing.T) {
	p := testProgram()

	data, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(got.Strings) != 2 || got.Strings[0] != "greeting" || got.Strings[1] != "世界" {
		t.Errorf("Strings: got %q", got.Strings)
	}
	if len(got.Code) != len(p.Code) {
		t.Fatalf("Code: got %d instructions, want %d", len(got.Code), len(p.Code))
	}
	for i := range p.Code {
		if got.Code[i] != p.Code[i] {
			t.Errorf("Code[%d]: got %#v, want %#v", i, got.Code[i], p.Code[i])
		}
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	a, err := Marshal(testProgram())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b, err := Marshal(testProgram())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("canonical encoding should be deterministic")
	}
}

func TestRecord_EncodesAsArray(t *testing.T) {
	data, err := cborEncMode.Marshal(Record{Op: 0x01})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// array(4) [1, 0, 0, 0]
	want := []byte{0x84, 0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(data, want) {
		t.Errorf("got % x, want % x", data, want)
	}
}

func TestUnmarshal_EmptyProgram(t *testing.T) {
	data, err := Marshal(bytecode.NewProgram())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Strings) != 0 || len(got.Code) != 0 {
		t.Errorf("got %#v, want empty program", got)
	}
}

func TestUnmarshal_InvalidOpcode(t *testing.T) {
	env := &Envelope{Version: EnvelopeVersion, Code: []Record{{Op: 0x06}}}
	data, err := cborEncMode.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	_, err = Unmarshal(data)
	if !errors.Is(err, bytecode.ErrInvalidOperation) {
		t.Errorf("err = %v, want ErrInvalidOperation", err)
	}
}

func TestUnmarshal_NewerVersion(t *testing.T) {
	data, err := cborEncMode.Marshal(&Envelope{Version: EnvelopeVersion + 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	_, err = Unmarshal(data)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestUnmarshalWith_Legacy(t *testing.T) {
	data, err := Marshal(testProgram())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	_, err = UnmarshalWith(data, bytecode.Decoder{Mode: bytecode.SubOpcodeLegacy})
	var boe *bytecode.BinaryOperationError
	if !errors.As(err, &boe) {
		t.Errorf("err = %v, want *BinaryOperationError", err)
	}
}

func TestUnmarshal_Garbage(t *testing.T) {
	_, err := Unmarshal([]byte{0xFF, 0x00})
	if err == nil {
		t.Fatal("expected error for invalid CBOR")
	}

	data, err := cbor.Marshal("not an envelope")
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := Unmarshal(data); err == nil {
		t.Error("expected error for a text string instead of an envelope")
	}
}

func TestMarshal_InvalidUTF8String(t *testing.T) {
	p := &bytecode.Program{
		Strings: []string{"ok", "\xff\xfe"},
		Code:    []bytecode.Instruction{bytecode.Halt{}},
	}

	data, err := Marshal(p)
	if !errors.Is(err, ErrInvalidString) {
		t.Fatalf("err = %v, want ErrInvalidString", err)
	}
	if data != nil {
		t.Errorf("Marshal returned %d bytes alongside the error", len(data))
	}

	// Latin-1 text that went through the raw codec is valid UTF-8 and packs.
	raw, err := bytecode.ParseProgram(p.Serialize())
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	data, err = Marshal(raw)
	if err != nil {
		t.Fatalf("Marshal after raw round trip: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Strings) != 2 || got.Strings[1] != raw.Strings[1] {
		t.Errorf("Strings: got %q, want %q", got.Strings, raw.Strings)
	}
}

func TestUnmarshal_MissingVersion(t *testing.T) {
	data, err := cborEncMode.Marshal(map[int][]string{2: {"x"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	_, err = Unmarshal(data)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("err = %v, want ErrUnsupportedVersion", err)
	}
}
