package isa

// Descriptor is the per-mnemonic legality and encoding information the
// assembler consults after it has classified an operand pair into an
// AddressingMode.
type Descriptor struct {
	Mnemonic     string
	Opcode       uint8
	AllowedModes map[AddressingMode]bool
	SizeAllowed  bool
}

func modes(ms ...AddressingMode) map[AddressingMode]bool {
	set := make(map[AddressingMode]bool, len(ms))
	for _, m := range ms {
		set[m] = true
	}
	return set
}

// aluModes is the addressing-mode set shared by every two-operand
// arithmetic/logic mnemonic: register-immediate, register-register, and
// the src/dest/const forms of absolute, register-indirect and indexed
// addressing.
func aluModes() map[AddressingMode]bool {
	return modes(
		RegImmediate, Register2,
		AbsoluteSrc, AbsoluteDest, AbsoluteConst,
		RegisterIndirectSrc, RegisterIndirectDest, RegisterIndirectConst,
		IndexedSrc, IndexedDest, IndexedConst,
	)
}

// memModes is the addressing-mode set shared by one-operand
// read-modify-write mnemonics operating on a register or a memory cell.
func memModes() map[AddressingMode]bool {
	return modes(Register1, RegisterIndirect1, Absolute1, Indexed1)
}

// Table maps a lower-cased mnemonic to its descriptor. Opcodes are
// assigned sequentially in table order, so a test can name an opcode
// instead of hard-coding a number.
var Table = buildTable()

func buildTable() map[string]*Descriptor {
	t := make(map[string]*Descriptor)
	var next uint8

	define := func(names []string, m map[AddressingMode]bool, sizeAllowed bool) {
		for _, n := range names {
			t[n] = &Descriptor{
				Mnemonic:     n,
				Opcode:       next,
				AllowedModes: m,
				SizeAllowed:  sizeAllowed,
			}
			next++
		}
	}

	// Control — no operand at all.
	define([]string{"brk", "nop", "rts", "rti", "slp", "sei", "cli", "sec", "clc", "sev", "clv"},
		modes(Implied), false)

	// Stack.
	define([]string{"push"}, modes(ConstImmediate, Register1, RegisterIndirect1, Absolute1, Indexed1), true)
	define([]string{"pop", "pusha", "popa"}, nil, false)
	// PUSHA/POPA take no operand; POP behaves like the other
	// single-operand read-modify-write instructions.
	t["pusha"].AllowedModes = modes(Implied)
	t["popa"].AllowedModes = modes(Implied)
	t["pop"].AllowedModes = memModes()
	t["pop"].SizeAllowed = true

	// Transfer / arithmetic / logic — two-operand ALU shape.
	define([]string{"mov", "add", "sub", "adc", "sbc", "and", "or", "xor",
		"shl", "shr", "rol", "ror", "cmp"}, aluModes(), true)
	define([]string{"mul", "div"}, aluModes(), false)

	// Single-operand read-modify-write.
	define([]string{"clr", "inc", "dec"}, memModes(), true)

	// Sign extension: a single register operand only, width implied by the
	// mnemonic itself so no size suffix is meaningful.
	define([]string{"sxb", "sxw"}, modes(Register1), false)

	// Flow.
	define([]string{"jmp", "jsr"}, modes(Direct, Register1, RegisterIndirect1, Absolute1, Indexed1), true)
	define([]string{"sys"}, modes(Syscall), false)

	// Branches — always relative, always a fixed 16-bit displacement.
	define([]string{"bra", "beq", "bne", "bcc", "bcs", "bpl", "bmi", "bvc",
		"bvs", "blt", "bgt", "ble", "bge"}, modes(Relative), false)

	return t
}

// Lookup returns the descriptor for a lower-cased mnemonic.
func Lookup(mnemonic string) (*Descriptor, bool) {
	d, ok := Table[mnemonic]
	return d, ok
}

// IsBranch reports whether the mnemonic is one of the relative branches.
func IsBranch(mnemonic string) bool {
	d, ok := Table[mnemonic]
	return ok && len(d.AllowedModes) == 1 && d.AllowedModes[Relative]
}
