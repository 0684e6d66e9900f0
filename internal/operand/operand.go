// Package operand implements the Operand Model of spec §3/§4.2: the
// Register/Variable/Constant tagged union, its textual parser, and its
// 12-bit encode/decode pair.
package operand

import (
	"fmt"
	"strconv"

	"github.com/P4UL-M/copper/internal/diagnostics"
	"github.com/P4UL-M/copper/internal/symtab"
)

// Tag discriminates the three Operand variants.
type Tag int

const (
	TagRegister Tag = iota
	TagVariable
	TagConstant
)

const (
	RegBits = 2
	// VarBits is the width of a Variable operand's index field, per spec §3.
	VarBits = 10
	// ConstBits is the width of a Constant operand's value field.
	ConstBits = 10

	maxReg   = 1<<RegBits - 1
	maxVar   = 1<<VarBits - 1
	maxConst = 1<<ConstBits - 1
)

// RegisterNames lists the four architectural registers in index order.
var RegisterNames = [4]string{"T0", "T1", "T2", "T3"}

// Operand is the tagged union of spec §3: a register index, a variable
// index, or a 10-bit constant.
type Operand struct {
	Tag   Tag
	Reg   int // valid when Tag == TagRegister
	Var   int // valid when Tag == TagVariable
	Const int // valid when Tag == TagConstant
}

func Register(r int) Operand { return Operand{Tag: TagRegister, Reg: r} }
func Variable(v int) Operand { return Operand{Tag: TagVariable, Var: v} }
func Constant(c int) Operand { return Operand{Tag: TagConstant, Const: c} }

func (o Operand) String() string {
	switch o.Tag {
	case TagRegister:
		return RegisterNames[o.Reg]
	case TagVariable:
		return fmt.Sprintf("var#%d", o.Var)
	case TagConstant:
		return strconv.Itoa(o.Const)
	default:
		return "?"
	}
}

// RegisterIndex returns (index, true) if name is one of T0..T3.
func RegisterIndex(name string) (int, bool) {
	for i, n := range RegisterNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Parse interprets a token as an Operand: a register name, a decimal
// integer constant (wrapped to 10 bits on its unsigned interpretation), or
// a reference to an already-interned variable (spec §4.2). Forward
// variable references are not permitted — vars must, by the time they are
// used, already be present in the Table.
func Parse(token string, vars *symtab.Table, loc diagnostics.Location) (Operand, error) {
	if r, ok := RegisterIndex(token); ok {
		return Register(r), nil
	}
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return Constant(int(uint64(n) & maxConst)), nil
	}
	idx, err := vars.Lookup(token, loc)
	if err != nil {
		return Operand{}, err
	}
	return Variable(idx), nil
}

// Encode packs the Operand into its 12-bit wire form: tag[2] || payload[10]
// per spec §3. The register variant places its 2-bit value in the top two
// payload bits and zeroes the rest; the other two variants fill the full
// 10-bit payload.
func (o Operand) Encode() (uint16, error) {
	switch o.Tag {
	case TagRegister:
		if o.Reg < 0 || o.Reg > maxReg {
			return 0, fmt.Errorf("operand: register index %d out of range", o.Reg)
		}
		return uint16(0<<10) | uint16(o.Reg)<<8, nil
	case TagVariable:
		if o.Var < 0 || o.Var > maxVar {
			return 0, fmt.Errorf("operand: variable index %d out of range", o.Var)
		}
		return uint16(1<<10) | uint16(o.Var), nil
	case TagConstant:
		if o.Const < 0 || o.Const > maxConst {
			return 0, fmt.Errorf("operand: constant %d out of range", o.Const)
		}
		return uint16(2<<10) | uint16(o.Const), nil
	default:
		return 0, fmt.Errorf("operand: unknown tag %d", o.Tag)
	}
}

// Decode unpacks a 12-bit wire value into an Operand, the inverse of
// Encode. Any tag other than the three in spec §3 is MalformedBinary.
func Decode(bits uint16, loc diagnostics.Location) (Operand, error) {
	tag := (bits >> 10) & 0x3
	payload := bits & 0x3FF
	switch tag {
	case 0:
		return Register(int(payload>>8) & maxReg), nil
	case 1:
		return Variable(int(payload)), nil
	case 2:
		return Constant(int(payload)), nil
	default:
		return Operand{}, diagnostics.New(diagnostics.MalformedBinary, loc, "unknown operand tag %02b", tag)
	}
}
