package isa

// AddressingMode is one of the 20 tags controlling how the encoder lays
// out an instruction's operands. It is a 5-bit field on the wire.
type AddressingMode uint8

const (
	Implied AddressingMode = iota
	RegImmediate
	ConstImmediate
	Register1
	Register2
	Absolute1
	AbsoluteSrc
	AbsoluteDest
	AbsoluteConst
	RegisterIndirect1
	RegisterIndirectSrc
	RegisterIndirectDest
	RegisterIndirectConst
	Indexed1
	IndexedSrc
	IndexedDest
	IndexedConst
	Relative
	Direct
	Syscall
)

var modeNames = [...]string{
	Implied:               "IMPLIED",
	RegImmediate:          "REG_IMMEDIATE",
	ConstImmediate:        "CONST_IMMEDIATE",
	Register1:             "REGISTER1",
	Register2:             "REGISTER2",
	Absolute1:             "ABSOLUTE1",
	AbsoluteSrc:           "ABSOLUTE_SRC",
	AbsoluteDest:          "ABSOLUTE_DEST",
	AbsoluteConst:         "ABSOLUTE_CONST",
	RegisterIndirect1:     "REGISTER_INDIRECT1",
	RegisterIndirectSrc:   "REGISTER_INDIRECT_SRC",
	RegisterIndirectDest:  "REGISTER_INDIRECT_DEST",
	RegisterIndirectConst: "REGISTER_INDIRECT_CONST",
	Indexed1:              "INDEXED1",
	IndexedSrc:            "INDEXED_SRC",
	IndexedDest:           "INDEXED_DEST",
	IndexedConst:          "INDEXED_CONST",
	Relative:              "RELATIVE",
	Direct:                "DIRECT",
	Syscall:               "SYSCALL",
}

func (m AddressingMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "UNKNOWN_MODE"
}

// PackWord builds the 16-bit instruction word per the final field
// ordering: addressingMode:5, registerConfiguration:3, opcode:6,
// opcodeSize:2 (low bit to high bit).
func PackWord(mode AddressingMode, rc RegisterConfig, opcode uint8, size OpcodeSize) uint16 {
	var w uint16
	w |= uint16(mode) & 0x1f
	w |= (uint16(rc) & 0x7) << 5
	w |= (uint16(opcode) & 0x3f) << 8
	w |= (uint16(size) & 0x3) << 14
	return w
}

// PutWordLE splits a packed instruction word into its little-endian
// byte pair, the wire order the data model fixes for every multi-byte
// field.
func PutWordLE(w uint16) [2]byte {
	return [2]byte{byte(w), byte(w >> 8)}
}
