package loader_test

import (
	"testing"

	"github.com/P4UL-M/copper/internal/instr"
	"github.com/P4UL-M/copper/internal/loader"
	"github.com/P4UL-M/copper/internal/source"
)

func textProgram(lines ...string) *source.Program {
	return &source.Program{Path: "test.co", Kind: source.KindText, Lines: lines}
}

func binaryProgram(words ...uint32) *source.Program {
	return &source.Program{Path: "test.bin", Kind: source.KindBinary, Words: words}
}

// TestLoadSimpleCode is scenario S1 of spec §8.
func TestLoadSimpleCode(t *testing.T) {
	res, err := loader.Load(textProgram(
		"#CODE",
		"LDA T0 7",
		"HLT",
	))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(res.Instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(res.Instructions))
	}
	if len(res.Memory) != 0 {
		t.Errorf("got %d memory entries, want 0", len(res.Memory))
	}
}

// TestLoadDataAndCode is scenario S2 of spec §8.
func TestLoadDataAndCode(t *testing.T) {
	res, err := loader.Load(textProgram(
		"#DATA",
		"x 5",
		"#CODE",
		"LDA T0 x",
		"ADD T0 3",
		"STR x T0",
		"HLT",
	))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(res.Memory) != 1 || res.Memory[0] != 5 {
		t.Fatalf("got memory %v, want [5] (initial value, before execution)", res.Memory)
	}
	if res.Vars.Len() != 1 || res.Vars.Name(0) != "x" {
		t.Errorf("expected variable table to contain only 'x'")
	}
}

func TestMissingSectionIsFatal(t *testing.T) {
	_, err := loader.Load(textProgram("LDA T0 7"))
	if err == nil {
		t.Errorf("expected MissingSection error for a line before any section marker")
	}
}

func TestDuplicateVariableIsFatal(t *testing.T) {
	_, err := loader.Load(textProgram(
		"#DATA",
		"x 1",
		"x 2",
	))
	if err == nil {
		t.Errorf("expected DuplicateName error for a redeclared variable")
	}
}

func TestUnresolvedLabelIsFatal(t *testing.T) {
	_, err := loader.Load(textProgram(
		"#CODE",
		"JMP nowhere",
		"HLT",
	))
	if err == nil {
		t.Errorf("expected UnresolvedLabel error for a branch to an undefined label")
	}
}

func TestForwardLabelReference(t *testing.T) {
	// scenario S3 of spec §8.
	res, err := loader.Load(textProgram(
		"#CODE",
		"LDA T0 1",
		"BEQ T0 1 end",
		"LDA T0 99",
		"end:",
		"HLT",
	))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if res.Labels.Len() != 1 || res.Labels.Name(0) != "end" {
		t.Fatalf("expected a single label 'end'")
	}
	if _, ok := res.LabelIndices[0]; !ok {
		t.Errorf("label 'end' should resolve to an instruction index")
	}
}

func TestArrayAllocatesContiguousVarIds(t *testing.T) {
	res, err := loader.Load(textProgram(
		"#DATA",
		"arr[3] 9",
		"#CODE",
		"HLT",
	))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if res.Vars.Len() != 3 {
		t.Fatalf("got %d variables, want 3 (base + 2 synthetic siblings)", res.Vars.Len())
	}
	if len(res.Memory) != 3 {
		t.Fatalf("got %d memory entries, want 3", len(res.Memory))
	}
	for i, v := range res.Memory {
		if v != 9 {
			t.Errorf("memory[%d] = %d, want 9", i, v)
		}
	}
}

// TestLoadBinaryDataSection covers the .bin half of spec §4.4/§4.5: a
// plain VARIABLE word reserves exactly one VarId, and an ARRAY word
// reserves Length consecutive VarIds, continuing from where the plain
// variable left off.
func TestLoadBinaryDataSection(t *testing.T) {
	plain := instr.DataWord{IsArray: false, Name: 0, Value: 5}
	array := instr.DataWord{IsArray: true, Name: 1, Length: 2, Value: 9}

	res, err := loader.Load(binaryProgram(
		instr.SectionMarker{Section: instr.SectionData}.Encode(),
		plain.Encode(),
		array.Encode(),
		instr.SectionMarker{Section: instr.SectionCode}.Encode(),
		mustEncode(t, instr.Hlt{}),
	))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if res.Vars.Len() != 3 {
		t.Fatalf("got %d variables, want 3 (1 plain + 2 array elements)", res.Vars.Len())
	}
	want := []uint32{5, 9, 9}
	if len(res.Memory) != len(want) {
		t.Fatalf("got %d memory entries, want %d", len(res.Memory), len(want))
	}
	for i, v := range want {
		if res.Memory[i] != v {
			t.Errorf("memory[%d] = %d, want %d", i, res.Memory[i], v)
		}
	}
	if len(res.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1 (HLT)", len(res.Instructions))
	}
}

func mustEncode(t *testing.T, ins instr.Instruction) uint32 {
	t.Helper()
	word, err := ins.Encode()
	if err != nil {
		t.Fatalf("Encode(%#v) returned error: %v", ins, err)
	}
	return word
}

func TestInvalidVariableNameRejectsRegisterLookalike(t *testing.T) {
	_, err := loader.Load(textProgram(
		"#DATA",
		"T0 1",
	))
	if err == nil {
		t.Errorf("expected InvalidName error for a variable named like a register")
	}
}
