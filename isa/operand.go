package isa

// OperandType is the syntactic classification of a whole operand —
// monadic or diadic — into one of the closed set of shapes the
// classifier recognizes, before any addressing-mode legality check
// runs. Where AddressingMode records how the machine encodes an
// operand, OperandType records how the source text was shaped to get
// there. Several OperandType values map to the same AddressingMode
// (a bracketed constant and a bracketed label both become ABSOLUTE1,
// for example), and a bare constant or label maps to whichever of
// RELATIVE, DIRECT or CONST_IMMEDIATE the mnemonic allows.
type OperandType int

const (
	OperandImplied OperandType = iota
	OperandRegister
	OperandConstant
	OperandLabel
	OperandIndirectRegister
	OperandIndirectConstant
	OperandIndirectLabel
	OperandIndexedRegConst
	OperandIndexedConstReg
	OperandIndexedRegLabel
	OperandIndexedLabelReg

	OperandRegisterRegister
	OperandRegisterConstant
	OperandRegisterLabel
	OperandRegisterIndirectRegister
	OperandIndirectRegisterRegister
	OperandIndirectRegisterConstant
	OperandIndirectRegisterLabel
	OperandRegisterIndirectConstant
	OperandRegisterIndirectLabel
	OperandIndirectConstantRegister
	OperandIndirectLabelRegister
	OperandIndirectConstantConstant
	OperandIndirectConstantLabel
	OperandIndirectLabelConstant
	OperandIndirectLabelLabel
	OperandRegisterIndexedRegConst
	OperandRegisterIndexedConstReg
	OperandRegisterIndexedRegLabel
	OperandRegisterIndexedLabelReg
	OperandIndexedRegConstRegister
	OperandIndexedConstRegRegister
	OperandIndexedRegLabelRegister
	OperandIndexedLabelRegRegister
	OperandIndexedRegConstConstant
	OperandIndexedRegConstLabel
	OperandIndexedConstRegConstant
	OperandIndexedConstRegLabel
	OperandIndexedRegLabelConstant
	OperandIndexedRegLabelLabel
	OperandIndexedLabelRegConstant
	OperandIndexedLabelRegLabel
	OperandConstantConstant
	OperandConstantLabel
	OperandLabelConstant
	OperandLabelLabel
)

var operandTypeNames = map[OperandType]string{
	OperandImplied:          "IMPLIED",
	OperandRegister:         "REGISTER",
	OperandConstant:         "CONSTANT",
	OperandLabel:            "LABEL",
	OperandIndirectRegister: "INDIRECT_REGISTER",
	OperandIndirectConstant: "INDIRECT_CONSTANT",
	OperandIndirectLabel:    "INDIRECT_LABEL",
	OperandIndexedRegConst:  "INDEXED_REG_CONST",
	OperandIndexedConstReg:  "INDEXED_CONST_REG",
	OperandIndexedRegLabel:  "INDEXED_REG_LABEL",
	OperandIndexedLabelReg:  "INDEXED_LABEL_REG",

	OperandRegisterRegister:         "REGISTER,REGISTER",
	OperandRegisterConstant:         "REGISTER,CONSTANT",
	OperandRegisterLabel:            "REGISTER,LABEL",
	OperandRegisterIndirectRegister: "REGISTER,INDIRECT_REGISTER",
	OperandIndirectRegisterRegister: "INDIRECT_REGISTER,REGISTER",
	OperandIndirectRegisterConstant: "INDIRECT_REGISTER,CONSTANT",
	OperandIndirectRegisterLabel:    "INDIRECT_REGISTER,LABEL",
	OperandRegisterIndirectConstant: "REGISTER,INDIRECT_CONSTANT",
	OperandRegisterIndirectLabel:    "REGISTER,INDIRECT_LABEL",
	OperandIndirectConstantRegister: "INDIRECT_CONSTANT,REGISTER",
	OperandIndirectLabelRegister:    "INDIRECT_LABEL,REGISTER",
	OperandIndirectConstantConstant: "INDIRECT_CONSTANT,CONSTANT",
	OperandIndirectConstantLabel:    "INDIRECT_CONSTANT,LABEL",
	OperandIndirectLabelConstant:    "INDIRECT_LABEL,CONSTANT",
	OperandIndirectLabelLabel:       "INDIRECT_LABEL,LABEL",
	OperandRegisterIndexedRegConst:  "REGISTER,INDEXED_REG_CONST",
	OperandRegisterIndexedConstReg:  "REGISTER,INDEXED_CONST_REG",
	OperandRegisterIndexedRegLabel:  "REGISTER,INDEXED_REG_LABEL",
	OperandRegisterIndexedLabelReg:  "REGISTER,INDEXED_LABEL_REG",
	OperandIndexedRegConstRegister:  "INDEXED_REG_CONST,REGISTER",
	OperandIndexedConstRegRegister:  "INDEXED_CONST_REG,REGISTER",
	OperandIndexedRegLabelRegister:  "INDEXED_REG_LABEL,REGISTER",
	OperandIndexedLabelRegRegister:  "INDEXED_LABEL_REG,REGISTER",
	OperandIndexedRegConstConstant:  "INDEXED_REG_CONST,CONSTANT",
	OperandIndexedRegConstLabel:     "INDEXED_REG_CONST,LABEL",
	OperandIndexedConstRegConstant:  "INDEXED_CONST_REG,CONSTANT",
	OperandIndexedConstRegLabel:     "INDEXED_CONST_REG,LABEL",
	OperandIndexedRegLabelConstant:  "INDEXED_REG_LABEL,CONSTANT",
	OperandIndexedRegLabelLabel:     "INDEXED_REG_LABEL,LABEL",
	OperandIndexedLabelRegConstant:  "INDEXED_LABEL_REG,CONSTANT",
	OperandIndexedLabelRegLabel:     "INDEXED_LABEL_REG,LABEL",
	OperandConstantConstant:         "CONSTANT,CONSTANT",
	OperandConstantLabel:            "CONSTANT,LABEL",
	OperandLabelConstant:            "LABEL,CONSTANT",
	OperandLabelLabel:               "LABEL,LABEL",
}

func (t OperandType) String() string {
	if s, ok := operandTypeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}
