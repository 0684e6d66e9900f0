package instr

import "github.com/P4UL-M/copper/internal/operand"

// --- Reg, Operand shape: LDA, AND, OR, ADD, SUB, DIV, MUL, MOD -------------

type regOpInstr struct {
	op  Op
	Reg int
	Val operand.Operand
}

func (i regOpInstr) Opcode() Op { return i.op }

func (i regOpInstr) Encode() (uint32, error) {
	bits, err := i.Val.Encode()
	if err != nil {
		return 0, err
	}
	return pack(i.op, f(2, uint32(i.Reg)), f(12, uint32(bits)), f(13, 0)), nil
}

type Lda struct{ regOpInstr }
type Andi struct{ regOpInstr }
type Ori struct{ regOpInstr }
type Addi struct{ regOpInstr }
type Subi struct{ regOpInstr }
type Divi struct{ regOpInstr }
type Muli struct{ regOpInstr }
type Modi struct{ regOpInstr }

func NewLda(reg int, val operand.Operand) Lda   { return Lda{regOpInstr{LDA, reg, val}} }
func NewAnd(reg int, val operand.Operand) Andi  { return Andi{regOpInstr{AND, reg, val}} }
func NewOr(reg int, val operand.Operand) Ori    { return Ori{regOpInstr{OR, reg, val}} }
func NewAdd(reg int, val operand.Operand) Addi  { return Addi{regOpInstr{ADD, reg, val}} }
func NewSub(reg int, val operand.Operand) Subi  { return Subi{regOpInstr{SUB, reg, val}} }
func NewDiv(reg int, val operand.Operand) Divi  { return Divi{regOpInstr{DIV, reg, val}} }
func NewMul(reg int, val operand.Operand) Muli  { return Muli{regOpInstr{MUL, reg, val}} }
func NewMod(reg int, val operand.Operand) Modi  { return Modi{regOpInstr{MOD, reg, val}} }

// --- Var, Operand shape: STR -----------------------------------------------

type Str struct {
	Var int
	Val operand.Operand
}

func (Str) Opcode() Op { return STR }

func (s Str) Encode() (uint32, error) {
	bits, err := s.Val.Encode()
	if err != nil {
		return 0, err
	}
	return pack(STR, f(10, uint32(s.Var)), f(12, uint32(bits)), f(5, 0)), nil
}

// --- Operand-only shape: PUSH, IN, OUT -------------------------------------

type operandOnlyInstr struct {
	op  Op
	Val operand.Operand
}

func (i operandOnlyInstr) Opcode() Op { return i.op }

func (i operandOnlyInstr) Encode() (uint32, error) {
	bits, err := i.Val.Encode()
	if err != nil {
		return 0, err
	}
	return pack(i.op, f(12, uint32(bits)), f(15, 0)), nil
}

type Push struct{ operandOnlyInstr }
type In struct{ operandOnlyInstr }
type Out struct{ operandOnlyInstr }

func NewPush(val operand.Operand) Push { return Push{operandOnlyInstr{PUSH, val}} }
func NewIn(val operand.Operand) In     { return In{operandOnlyInstr{IN, val}} }
func NewOut(val operand.Operand) Out   { return Out{operandOnlyInstr{OUT, val}} }

// --- Reg-only shape: POP, NOT, INC, DEC ------------------------------------

type regOnlyInstr struct {
	op  Op
	Reg int
}

func (i regOnlyInstr) Opcode() Op { return i.op }

func (i regOnlyInstr) Encode() (uint32, error) {
	return pack(i.op, f(2, uint32(i.Reg)), f(25, 0)), nil
}

type Pop struct{ regOnlyInstr }
type Not struct{ regOnlyInstr }
type Inc struct{ regOnlyInstr }
type Dec struct{ regOnlyInstr }

func NewPop(reg int) Pop { return Pop{regOnlyInstr{POP, reg}} }
func NewNot(reg int) Not { return Not{regOnlyInstr{NOT, reg}} }
func NewInc(reg int) Inc { return Inc{regOnlyInstr{INC, reg}} }
func NewDec(reg int) Dec { return Dec{regOnlyInstr{DEC, reg}} }

// --- Operand, Operand, Label shape: BEQ, BNE, BSM, BBG ---------------------

type branchInstr struct {
	op         Op
	Lhs, Rhs   operand.Operand
	Label      int
}

func (i branchInstr) Opcode() Op { return i.op }

func (i branchInstr) Encode() (uint32, error) {
	lhs, err := i.Lhs.Encode()
	if err != nil {
		return 0, err
	}
	rhs, err := i.Rhs.Encode()
	if err != nil {
		return 0, err
	}
	return pack(i.op, f(12, uint32(lhs)), f(12, uint32(rhs)), f(3, uint32(i.Label))), nil
}

type Beq struct{ branchInstr }
type Bne struct{ branchInstr }
type Bsm struct{ branchInstr }
type Bbg struct{ branchInstr }

func NewBeq(lhs, rhs operand.Operand, label int) Beq { return Beq{branchInstr{BEQ, lhs, rhs, label}} }
func NewBne(lhs, rhs operand.Operand, label int) Bne { return Bne{branchInstr{BNE, lhs, rhs, label}} }
func NewBsm(lhs, rhs operand.Operand, label int) Bsm { return Bsm{branchInstr{BSM, lhs, rhs, label}} }
func NewBbg(lhs, rhs operand.Operand, label int) Bbg { return Bbg{branchInstr{BBG, lhs, rhs, label}} }

// --- Label-only shape: JMP, LABEL -------------------------------------------

type labelOnlyInstr struct {
	op    Op
	Label int
}

func (i labelOnlyInstr) Opcode() Op { return i.op }

func (i labelOnlyInstr) Encode() (uint32, error) {
	return pack(i.op, f(3, uint32(i.Label)), f(24, 0)), nil
}

type Jmp struct{ labelOnlyInstr }
type Lbl struct{ labelOnlyInstr }

func NewJmp(label int) Jmp { return Jmp{labelOnlyInstr{JMP, label}} }
func NewLabel(label int) Lbl { return Lbl{labelOnlyInstr{LABEL, label}} }

// --- Reg, Const shape: SRL, SRR ---------------------------------------------

type shiftInstr struct {
	op    Op
	Reg   int
	Const int
}

func (i shiftInstr) Opcode() Op { return i.op }

func (i shiftInstr) Encode() (uint32, error) {
	return pack(i.op, f(2, uint32(i.Reg)), f(10, uint32(i.Const)), f(15, 0)), nil
}

type Srl struct{ shiftInstr }
type Srr struct{ shiftInstr }

func NewSrl(reg, c int) Srl { return Srl{shiftInstr{SRL, reg, c}} }
func NewSrr(reg, c int) Srr { return Srr{shiftInstr{SRR, reg, c}} }

// --- No-operand shape: HLT ---------------------------------------------------

type Hlt struct{}

func (Hlt) Opcode() Op                { return HLT }
func (Hlt) Encode() (uint32, error)   { return pack(HLT, f(27, 0)), nil }
