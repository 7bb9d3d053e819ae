// Package bytecode benchmarks
//
// Run: go test -bench=. ./pkg/bytecode/...
// Run with memory stats: go test -bench=. -benchmem ./pkg/bytecode/...
package bytecode

import "testing"

// benchProgram builds a program with n strings and 10n instructions.
func benchProgram(n int) *Program {
	p := NewProgram()
	for i := 0; i < n; i++ {
		p.AddString("field_name")
	}
	insts := sampleInstructions()
	for i := 0; i < 10*n; i++ {
		p.Emit(insts[i%len(insts)])
	}
	return p
}

// ============================================================
// Instruction Benchmarks
// ============================================================

func BenchmarkEncode(b *testing.B) {
	insts := sampleInstructions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Encode(insts[i%len(insts)])
	}
}

func BenchmarkDecode(b *testing.B) {
	insts := sampleInstructions()
	recs := make([]Record, len(insts))
	for i, inst := range insts {
		recs[i] = Encode(inst)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(recs[i%len(recs)]); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================
// Serialization Benchmarks
// ============================================================

func BenchmarkSerializeSmall(b *testing.B) {
	p := benchProgram(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Serialize()
	}
}

func BenchmarkSerializeLarge(b *testing.B) {
	p := benchProgram(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Serialize()
	}
}

func BenchmarkParseLarge(b *testing.B) {
	data := benchProgram(1000).Serialize()
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseProgram(data); err != nil {
			b.Fatal(err)
		}
	}
}
