package asm

import (
	"errors"
	"regexp"
	"strings"

	"github.com/zmajoros/a65000asm/isa"
)

var errInvalidOperands = errors.New("no operand shape matched")

// Kind is the syntactic shape of one operand fragment, decided purely
// from its text — it says nothing about whether the shape is legal for
// the mnemonic it appears next to. That check happens later, in
// mapAddressingMode.
type Kind int

const (
	KindNone Kind = iota
	KindRegister
	KindConstant
	KindLabel
	KindIndirectRegister
	KindIndirectConstant
	KindIndirectLabel
	KindIndexedRegConst
	KindIndexedConstReg
	KindIndexedRegLabel
	KindIndexedLabelReg
)

var kindNames = map[Kind]string{
	KindNone:              "NONE",
	KindRegister:          "REGISTER",
	KindConstant:          "CONSTANT",
	KindLabel:             "LABEL",
	KindIndirectRegister:  "INDIRECT_REGISTER",
	KindIndirectConstant:  "INDIRECT_CONSTANT",
	KindIndirectLabel:     "INDIRECT_LABEL",
	KindIndexedRegConst:   "INDEXED_REG_CONST",
	KindIndexedConstReg:   "INDEXED_CONST_REG",
	KindIndexedRegLabel:   "INDEXED_REG_LABEL",
	KindIndexedLabelReg:   "INDEXED_LABEL_REG",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Atom is one classified operand fragment. Reg is meaningful for
// KindRegister, KindIndirectRegister, and the register half of an
// indexed kind. Text carries the raw constant/label token for
// KindConstant, KindLabel, and the value half of an indexed kind.
// Postfix is '+' (post-increment), '-' (pre-decrement), or 0.
type Atom struct {
	Kind    Kind
	Reg     isa.Register
	Text    string
	Postfix byte
	Raw     string
}

// IsBare reports whether the atom is a bare constant or label — the
// two shapes the mapper resolves to an ambiguous pseudo-mode.
func (a *Atom) IsBare() bool {
	return a.Kind == KindConstant || a.Kind == KindLabel
}

// IsIndexed reports whether the atom is one of the four
// register-plus-value indexed shapes.
func (a *Atom) IsIndexed() bool {
	switch a.Kind {
	case KindIndexedRegConst, KindIndexedConstReg, KindIndexedRegLabel, KindIndexedLabelReg:
		return true
	}
	return false
}

// IsAbsolute reports whether the atom names a fixed memory address
// written in brackets, i.e. `[$1000]` or `[some_label]`.
func (a *Atom) IsAbsolute() bool {
	return a.Kind == KindIndirectConstant || a.Kind == KindIndirectLabel
}

// ValueIsLabel reports whether the atom's constant/label slot (bare,
// absolute, or the value half of an indexed form) holds a label that
// needs deferred resolution rather than an immediately parseable
// literal.
func (a *Atom) ValueIsLabel() bool {
	switch a.Kind {
	case KindLabel, KindIndirectLabel, KindIndexedRegLabel, KindIndexedLabelReg:
		return true
	}
	return false
}

const (
	regFrag   = `(?:r(?:1[0-3]|[0-9])|sp|pc)`
	constFrag = `(?:\$[0-9a-f]+|%[01]+|-?[0-9]+)`
	labelFrag = `(?:[a-z_][a-z_0-9]*)`
	valFrag   = `(?:` + constFrag + `|` + labelFrag + `)`
)

var (
	reRegister         = regexp.MustCompile(`^` + regFrag + `$`)
	reConstant         = regexp.MustCompile(`^` + constFrag + `$`)
	reLabel            = regexp.MustCompile(`^` + labelFrag + `$`)
	reIndirectRegister = regexp.MustCompile(`^\[\s*(` + regFrag + `)\s*\]([+-])?$`)
	reIndirectValue    = regexp.MustCompile(`^\[\s*(` + valFrag + `)\s*\]$`)
	reIndexedRegVal    = regexp.MustCompile(`^\[\s*(` + regFrag + `)\s*\+\s*(` + valFrag + `)\s*\]([+-])?$`)
	reIndexedValReg    = regexp.MustCompile(`^\[\s*(` + valFrag + `)\s*\+\s*(` + regFrag + `)\s*\]([+-])?$`)
)

// classifyAtom recognizes a single operand fragment. The cascade tries
// the bracketed forms before the bare ones since a bracket is
// unambiguous evidence of an indirect or indexed shape.
func classifyAtom(s string) (*Atom, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errInvalidOperands
	}

	if a, ok := tryIndexed(s); ok {
		return a, nil
	}
	if a, ok := tryIndirect(s); ok {
		return a, nil
	}
	if a, ok := tryBare(s); ok {
		return a, nil
	}
	return nil, errInvalidOperands
}

func tryIndexed(s string) (*Atom, bool) {
	if m := reIndexedRegVal.FindStringSubmatch(s); m != nil {
		reg, _ := isa.ParseRegister(m[1])
		kind := KindIndexedRegConst
		if reLabel.MatchString(m[2]) && !reConstant.MatchString(m[2]) {
			kind = KindIndexedRegLabel
		}
		return &Atom{Kind: kind, Reg: reg, Text: m[2], Postfix: postfixByte(m[3]), Raw: s}, true
	}
	if m := reIndexedValReg.FindStringSubmatch(s); m != nil {
		reg, _ := isa.ParseRegister(m[2])
		kind := KindIndexedConstReg
		if reLabel.MatchString(m[1]) && !reConstant.MatchString(m[1]) {
			kind = KindIndexedLabelReg
		}
		return &Atom{Kind: kind, Reg: reg, Text: m[1], Postfix: postfixByte(m[3]), Raw: s}, true
	}
	return nil, false
}

func tryIndirect(s string) (*Atom, bool) {
	if m := reIndirectRegister.FindStringSubmatch(s); m != nil {
		reg, _ := isa.ParseRegister(m[1])
		return &Atom{Kind: KindIndirectRegister, Reg: reg, Postfix: postfixByte(m[2]), Raw: s}, true
	}
	if m := reIndirectValue.FindStringSubmatch(s); m != nil {
		kind := KindIndirectConstant
		if reLabel.MatchString(m[1]) && !reConstant.MatchString(m[1]) {
			kind = KindIndirectLabel
		}
		return &Atom{Kind: kind, Text: m[1], Raw: s}, true
	}
	return nil, false
}

func tryBare(s string) (*Atom, bool) {
	if reRegister.MatchString(s) {
		reg, ok := isa.ParseRegister(s)
		if !ok {
			return nil, false
		}
		return &Atom{Kind: KindRegister, Reg: reg, Raw: s}, true
	}
	if reConstant.MatchString(s) {
		return &Atom{Kind: KindConstant, Text: s, Raw: s}, true
	}
	if reLabel.MatchString(s) {
		return &Atom{Kind: KindLabel, Text: s, Raw: s}, true
	}
	return nil, false
}

func postfixByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}

// Operand is the fully classified argument text of an instruction
// line: either no atoms (implied), one (monadic), or two (diadic).
type Operand struct {
	Left  *Atom
	Right *Atom
}

// Diadic reports whether a comma separated the operand text into two
// fragments.
func (o *Operand) Diadic() bool {
	return o.Right != nil
}

// Type classifies the operand into the closed isa.OperandType set —
// the syntactic shape the mapper later maps to an addressing mode.
func (o *Operand) Type() isa.OperandType {
	if o.Left == nil {
		return isa.OperandImplied
	}
	if o.Right == nil {
		return monadicOperandTypes[o.Left.Kind]
	}
	if t, ok := diadicOperandTypes[[2]Kind{o.Left.Kind, o.Right.Kind}]; ok {
		return t
	}
	return isa.OperandType(-1)
}

// TypeTag names the classified shape for diagnostics.
func (o *Operand) TypeTag() string {
	return o.Type().String()
}

var monadicOperandTypes = map[Kind]isa.OperandType{
	KindRegister:         isa.OperandRegister,
	KindConstant:         isa.OperandConstant,
	KindLabel:            isa.OperandLabel,
	KindIndirectRegister: isa.OperandIndirectRegister,
	KindIndirectConstant: isa.OperandIndirectConstant,
	KindIndirectLabel:    isa.OperandIndirectLabel,
	KindIndexedRegConst:  isa.OperandIndexedRegConst,
	KindIndexedConstReg:  isa.OperandIndexedConstReg,
	KindIndexedRegLabel:  isa.OperandIndexedRegLabel,
	KindIndexedLabelReg:  isa.OperandIndexedLabelReg,
}

var diadicOperandTypes = map[[2]Kind]isa.OperandType{
	{KindRegister, KindRegister}:         isa.OperandRegisterRegister,
	{KindRegister, KindConstant}:         isa.OperandRegisterConstant,
	{KindRegister, KindLabel}:            isa.OperandRegisterLabel,
	{KindRegister, KindIndirectRegister}: isa.OperandRegisterIndirectRegister,
	{KindIndirectRegister, KindRegister}: isa.OperandIndirectRegisterRegister,
	{KindIndirectRegister, KindConstant}: isa.OperandIndirectRegisterConstant,
	{KindIndirectRegister, KindLabel}:    isa.OperandIndirectRegisterLabel,
	{KindRegister, KindIndirectConstant}: isa.OperandRegisterIndirectConstant,
	{KindRegister, KindIndirectLabel}:    isa.OperandRegisterIndirectLabel,
	{KindIndirectConstant, KindRegister}: isa.OperandIndirectConstantRegister,
	{KindIndirectLabel, KindRegister}:    isa.OperandIndirectLabelRegister,
	{KindIndirectConstant, KindConstant}: isa.OperandIndirectConstantConstant,
	{KindIndirectConstant, KindLabel}:    isa.OperandIndirectConstantLabel,
	{KindIndirectLabel, KindConstant}:    isa.OperandIndirectLabelConstant,
	{KindIndirectLabel, KindLabel}:       isa.OperandIndirectLabelLabel,
	{KindRegister, KindIndexedRegConst}:  isa.OperandRegisterIndexedRegConst,
	{KindRegister, KindIndexedConstReg}:  isa.OperandRegisterIndexedConstReg,
	{KindRegister, KindIndexedRegLabel}:  isa.OperandRegisterIndexedRegLabel,
	{KindRegister, KindIndexedLabelReg}:  isa.OperandRegisterIndexedLabelReg,
	{KindIndexedRegConst, KindRegister}:  isa.OperandIndexedRegConstRegister,
	{KindIndexedConstReg, KindRegister}:  isa.OperandIndexedConstRegRegister,
	{KindIndexedRegLabel, KindRegister}:  isa.OperandIndexedRegLabelRegister,
	{KindIndexedLabelReg, KindRegister}:  isa.OperandIndexedLabelRegRegister,
	{KindIndexedRegConst, KindConstant}:  isa.OperandIndexedRegConstConstant,
	{KindIndexedRegConst, KindLabel}:     isa.OperandIndexedRegConstLabel,
	{KindIndexedConstReg, KindConstant}:  isa.OperandIndexedConstRegConstant,
	{KindIndexedConstReg, KindLabel}:     isa.OperandIndexedConstRegLabel,
	{KindIndexedRegLabel, KindConstant}:  isa.OperandIndexedRegLabelConstant,
	{KindIndexedRegLabel, KindLabel}:     isa.OperandIndexedRegLabelLabel,
	{KindIndexedLabelReg, KindConstant}:  isa.OperandIndexedLabelRegConstant,
	{KindIndexedLabelReg, KindLabel}:     isa.OperandIndexedLabelRegLabel,
	{KindConstant, KindConstant}:         isa.OperandConstantConstant,
	{KindConstant, KindLabel}:            isa.OperandConstantLabel,
	{KindLabel, KindConstant}:            isa.OperandLabelConstant,
	{KindLabel, KindLabel}:               isa.OperandLabelLabel,
}

// splitOperands splits operand text on a top-level comma — one not
// nested inside brackets — since indexed forms carry a '+' but never a
// comma, a plain top-level split is sufficient.
func splitOperands(s string) []string {
	depth := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				return []string{s[:i], s[i+1:]}
			}
		}
	}
	return []string{s}
}

// classifyOperand parses the full operand text of an instruction line
// (everything after the mnemonic and optional size suffix) into an
// Operand. Empty text yields an Operand with no atoms at all.
func classifyOperand(s string) (*Operand, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return &Operand{}, nil
	}

	parts := splitOperands(s)
	left, err := classifyAtom(parts[0])
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return &Operand{Left: left}, nil
	}

	right, err := classifyAtom(parts[1])
	if err != nil {
		return nil, err
	}
	return &Operand{Left: left, Right: right}, nil
}
