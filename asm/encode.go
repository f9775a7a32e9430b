package asm

import (
	"regexp"
	"strings"

	"github.com/zmajoros/a65000asm/isa"
	"github.com/zmajoros/a65000asm/numeric"
	"github.com/zmajoros/a65000asm/symtab"
)

var reInstrHead = regexp.MustCompile(`^(\S+?)(?:\s+(.*))?$`)

// dispatchInstruction parses the mnemonic/size head off rest, looks it
// up in the instruction table, classifies the operand text, maps it to
// an addressing mode, and encodes it into the active segment.
func (a *Assembler) dispatchInstruction(rest string) error {
	if a.active == nil {
		return a.err(MissingSegment, "instruction before any .pc")
	}

	m := reInstrHead.FindStringSubmatch(rest)
	if m == nil {
		return a.err(SyntaxError, "cannot parse instruction line")
	}
	head, operandText := m[1], m[2]

	mnemonic, size, err := splitMnemonic(head)
	if err != nil {
		return a.err(InvalidSizeSpecifier, "%v", err)
	}

	desc, ok := isa.Lookup(mnemonic)
	if !ok {
		return a.err(InvalidMnemonic, "%q is not a known mnemonic", mnemonic)
	}
	if size != isa.SizeNone && !desc.SizeAllowed {
		return a.err(InvalidSizeSpecifier, "%s does not accept a size suffix", mnemonic)
	}

	op, err := classifyOperand(operandText)
	if err != nil {
		return a.err(InvalidOperands, "%v", err)
	}

	mode, err := mapAddressingMode(desc, op)
	if err != nil {
		if err == errInvalidOperands {
			return a.err(InvalidOperands, "%v", err)
		}
		return a.err(InvalidAddressingMode, "%s does not accept operand shape %s", mnemonic, op.TypeTag())
	}

	rc := registerConfig(mode, op.Left, op.Right)
	return a.encode(desc, mode, rc, size, op)
}

func splitMnemonic(head string) (string, isa.Size, error) {
	parts := strings.SplitN(head, ".", 2)
	if len(parts) == 1 {
		return parts[0], isa.SizeNone, nil
	}
	switch parts[1] {
	case "b":
		return parts[0], isa.SizeByte, nil
	case "w":
		return parts[0], isa.SizeWord, nil
	default:
		return "", 0, errBadSizeSuffix(parts[1])
	}
}

type errBadSizeSuffix string

func (e errBadSizeSuffix) Error() string { return "unknown size suffix: " + string(e) }

// encode writes the instruction word and its trailing payload for one
// classified operand. Each addressing mode's shape is spelled out
// explicitly rather than hidden behind shared helpers.
func (a *Assembler) encode(desc *isa.Descriptor, mode isa.AddressingMode, rc isa.RegisterConfig, size isa.Size, op *Operand) error {
	osize := isa.SizeToOpcodeSize(size)
	if mode == isa.Relative {
		// Branches carry no size suffix; the displacement is always a
		// 16-bit field, so the word's size bits are forced regardless.
		osize = isa.OS16Bit
	}
	word := isa.PutWordLE(isa.PackWord(mode, rc, desc.Opcode, osize))
	a.active.AppendBytes(word[:])

	switch mode {
	case isa.Implied:
		return nil

	case isa.Register1:
		a.appendReg(op.Left.Reg)
		return nil

	case isa.Register2:
		a.appendTwoRegs(op.Left.Reg, op.Right.Reg)
		return nil

	case isa.RegImmediate:
		a.appendReg(op.Left.Reg)
		return a.emitValue(op.Right.Text, size.Bytes(), false)

	case isa.ConstImmediate:
		return a.emitValue(op.Left.Text, size.Bytes(), false)

	case isa.RegisterIndirect1:
		a.appendReg(op.Left.Reg)
		return nil

	case isa.RegisterIndirectSrc:
		a.appendTwoRegs(op.Left.Reg, op.Right.Reg)
		return nil

	case isa.RegisterIndirectDest:
		a.appendTwoRegs(op.Left.Reg, op.Right.Reg)
		return nil

	case isa.RegisterIndirectConst:
		a.appendReg(op.Left.Reg)
		return a.emitValue(op.Right.Text, size.Bytes(), false)

	case isa.Absolute1:
		return a.emitValue(op.Left.Text, 4, false)

	case isa.AbsoluteSrc:
		a.appendReg(op.Left.Reg)
		return a.emitValue(op.Right.Text, 4, false)

	case isa.AbsoluteDest:
		a.appendReg(op.Right.Reg)
		return a.emitValue(op.Left.Text, 4, false)

	case isa.AbsoluteConst:
		if err := a.emitValue(op.Left.Text, 4, false); err != nil {
			return err
		}
		return a.emitValue(op.Right.Text, size.Bytes(), false)

	case isa.Indexed1:
		a.appendReg(op.Left.Reg)
		return a.emitValue(op.Left.Text, 4, false)

	case isa.IndexedSrc:
		a.appendTwoRegs(op.Left.Reg, op.Right.Reg)
		return a.emitValue(op.Right.Text, 4, false)

	case isa.IndexedDest:
		a.appendTwoRegs(op.Left.Reg, op.Right.Reg)
		return a.emitValue(op.Left.Text, 4, false)

	case isa.IndexedConst:
		a.appendReg(op.Left.Reg)
		if err := a.emitValue(op.Left.Text, 4, false); err != nil {
			return err
		}
		return a.emitValue(op.Right.Text, size.Bytes(), false)

	case isa.Relative:
		return a.emitValue(op.Left.Text, 2, true)

	case isa.Direct:
		return a.emitValue(op.Left.Text, 4, false)

	case isa.Syscall:
		if err := a.emitValue(op.Left.Text, 2, false); err != nil {
			return err
		}
		return a.emitValue(op.Right.Text, 4, false)

	default:
		return a.err(InternalError, "unhandled addressing mode %s", mode)
	}
}

func (a *Assembler) appendReg(r isa.Register) {
	a.active.AppendByte(byte(r))
}

func (a *Assembler) appendTwoRegs(left, right isa.Register) {
	a.active.AppendByte((byte(left) << 4) | byte(right))
}

// emitValue writes a width-sized field: a literal is range-checked and
// written immediately; a defined symbol is resolved and written
// immediately; an undefined symbol reserves the field as zero and
// queues a PatchSite for the end-of-pass resolution.
func (a *Assembler) emitValue(text string, width int, relative bool) error {
	addr := a.active.PC()

	if v, err := numeric.Parse(text); err == nil {
		if err := a.appendZero(width); err != nil {
			return err
		}
		return a.patchLiteral(addr, v, width, relative)
	} else if err != numeric.ErrInvalidFormat {
		return a.err(ValueOutOfRange, "%s: %v", text, err)
	}

	if !reIsLabel.MatchString(text) {
		return a.err(InvalidNumberFormat, "%q is neither a number nor a label", text)
	}

	if err := a.appendZero(width); err != nil {
		return err
	}

	if symAddr, ok := a.syms.Lookup(text); ok {
		return a.patchSymbol(addr, symAddr, width, relative)
	}

	a.patches.Defer(text, symtab.PatchSite{
		Address:    addr,
		Width:      width,
		IsRelative: relative,
		Line:       a.line,
		Text:       a.lineText,
	})
	return nil
}

// patchLiteral writes an already-known value straight into the
// reserved field. Branches taking a raw constant displacement (rather
// than a label) fall here too — there is no target address to compute,
// the operand text already is the displacement.
func (a *Assembler) patchLiteral(addr uint32, v int64, width int, relative bool) error {
	if relative {
		if v < -32768 || v > 32767 {
			return a.err(SymbolOutOfRange, "displacement %d out of signed 16-bit range", v)
		}
		return a.patchWidth(addr, uint32(int32(v)), width)
	}
	max := int64(1)<<uint(width*8) - 1
	if v < 0 || v > max {
		return a.err(SymbolOutOfRange, "value %d does not fit in the %d-byte field this operand occupies", v, width)
	}
	return a.patchWidth(addr, uint32(v), width)
}

func (a *Assembler) patchSymbol(addr, symAddr uint32, width int, relative bool) error {
	if relative {
		instrBase := int64(addr) - 2
		disp := int64(symAddr) - instrBase + 2
		if disp < -32768 || disp > 32767 {
			return a.err(SymbolOutOfRange, "branch displacement %d out of signed 16-bit range", disp)
		}
		return a.patchWidth(addr, uint32(int32(disp)), width)
	}
	max := uint64(1)<<uint(width*8) - 1
	if uint64(symAddr) > max {
		return a.err(SymbolOutOfRange, "symbol value %d does not fit in %d bytes", symAddr, width)
	}
	return a.patchWidth(addr, symAddr, width)
}

func (a *Assembler) patchWidth(addr, v uint32, width int) error {
	switch width {
	case 1:
		return a.active.PatchByte(addr, byte(v))
	case 2:
		return a.active.PatchWord(addr, uint16(v))
	case 4:
		return a.active.PatchDword(addr, v)
	default:
		return a.err(InternalError, "unsupported patch width %d", width)
	}
}
