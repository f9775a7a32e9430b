package asm

import "github.com/zmajoros/a65000asm/isa"

// mapAddressingMode maps a classified Operand to one of the 20
// addressing-mode tags and checks it against the mnemonic's allowed
// set. It does not itself resolve constants or labels — it only
// decides the shape.
func mapAddressingMode(desc *isa.Descriptor, op *Operand) (isa.AddressingMode, error) {
	var mode isa.AddressingMode

	switch {
	case op.Left == nil:
		mode = isa.Implied

	case op.Right == nil:
		m, err := monadicMode(desc, op.Left)
		if err != nil {
			return 0, err
		}
		mode = m

	default:
		m, err := diadicMode(desc, op.Left, op.Right)
		if err != nil {
			return 0, err
		}
		mode = m
	}

	if !desc.AllowedModes[mode] {
		return 0, errInvalidAddressingMode
	}
	return mode, nil
}

func monadicMode(desc *isa.Descriptor, a *Atom) (isa.AddressingMode, error) {
	switch a.Kind {
	case KindRegister:
		return isa.Register1, nil
	case KindIndirectRegister:
		return isa.RegisterIndirect1, nil
	case KindIndirectConstant, KindIndirectLabel:
		return isa.Absolute1, nil
	case KindIndexedRegConst, KindIndexedConstReg, KindIndexedRegLabel, KindIndexedLabelReg:
		return isa.Indexed1, nil
	case KindConstant, KindLabel:
		return resolveAmbiguous(desc)
	default:
		return 0, errInvalidOperands
	}
}

// resolveAmbiguous picks whichever of RELATIVE, DIRECT, or
// CONST_IMMEDIATE the mnemonic actually allows for a bare
// constant/label operand.
func resolveAmbiguous(desc *isa.Descriptor) (isa.AddressingMode, error) {
	switch {
	case desc.AllowedModes[isa.Relative]:
		return isa.Relative, nil
	case desc.AllowedModes[isa.Direct]:
		return isa.Direct, nil
	case desc.AllowedModes[isa.ConstImmediate]:
		return isa.ConstImmediate, nil
	default:
		return 0, errInvalidAddressingMode
	}
}

func diadicMode(desc *isa.Descriptor, l, r *Atom) (isa.AddressingMode, error) {
	switch {
	case l.Kind == KindRegister && r.Kind == KindRegister:
		return isa.Register2, nil
	case l.Kind == KindRegister && r.IsBare():
		return isa.RegImmediate, nil
	case l.Kind == KindRegister && r.Kind == KindIndirectRegister:
		return isa.RegisterIndirectSrc, nil
	case l.Kind == KindIndirectRegister && r.Kind == KindRegister:
		return isa.RegisterIndirectDest, nil
	case l.Kind == KindIndirectRegister && r.IsBare():
		return isa.RegisterIndirectConst, nil
	case l.Kind == KindRegister && r.IsAbsolute():
		return isa.AbsoluteSrc, nil
	case l.IsAbsolute() && r.Kind == KindRegister:
		return isa.AbsoluteDest, nil
	case l.IsAbsolute() && r.IsBare():
		return isa.AbsoluteConst, nil
	case l.Kind == KindRegister && r.IsIndexed():
		return isa.IndexedSrc, nil
	case l.IsIndexed() && r.Kind == KindRegister:
		return isa.IndexedDest, nil
	case l.IsIndexed() && r.IsBare():
		return isa.IndexedConst, nil
	case l.IsBare() && r.IsBare():
		return isa.Syscall, nil
	default:
		return 0, errInvalidOperands
	}
}

// registerConfig derives the RegisterConfig field from the mapped mode
// and the atoms that produced it. The postfix, when present, always
// comes from whichever atom carries the indirect/indexed register.
func registerConfig(mode isa.AddressingMode, l, r *Atom) isa.RegisterConfig {
	switch mode {
	case isa.Register1, isa.RegImmediate, isa.AbsoluteSrc, isa.AbsoluteDest:
		return isa.RCRegister

	case isa.Register2:
		return isa.RCTwoRegisters

	case isa.RegisterIndirect1:
		return singleWithPostfix(l.Postfix)

	case isa.RegisterIndirectConst:
		return singleWithPostfix(l.Postfix)

	case isa.RegisterIndirectSrc:
		return twoWithPostfix(r.Postfix)

	case isa.RegisterIndirectDest:
		return twoWithPostfix(l.Postfix)

	case isa.Indexed1, isa.IndexedConst:
		return singleWithPostfix(l.Postfix)

	case isa.IndexedSrc:
		return twoWithPostfix(r.Postfix)

	case isa.IndexedDest:
		return twoWithPostfix(l.Postfix)

	default:
		return isa.RCNone
	}
}

func singleWithPostfix(p byte) isa.RegisterConfig {
	switch p {
	case '+':
		return isa.RCRegisterPostIncrement
	case '-':
		return isa.RCRegisterPreDecrement
	default:
		return isa.RCRegister
	}
}

func twoWithPostfix(p byte) isa.RegisterConfig {
	switch p {
	case '+':
		return isa.RCTwoRegistersPostIncrement
	case '-':
		return isa.RCTwoRegistersPreDecrement
	default:
		return isa.RCTwoRegisters
	}
}
