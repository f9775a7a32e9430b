package asm

import (
	"regexp"
	"strings"

	"github.com/zmajoros/a65000asm/numeric"
	"github.com/zmajoros/a65000asm/segment"
	"github.com/zmajoros/a65000asm/symtab"
)

var (
	rePC       = regexp.MustCompile(`^\.pc\s*=\s*(.+)$`)
	reDef      = regexp.MustCompile(`^\.def\s+([a-z_][a-z_0-9]*)\s*=\s*(.+)$`)
	reDefExpr  = regexp.MustCompile(`^([a-z_][a-z_0-9]*)\s*\+\s*(.+)$`)
	reTextLit  = regexp.MustCompile(`^\.text(z)?\s+"([^"]*)"\s*$`)
	reDataList = regexp.MustCompile(`^\.(byte|word|dword)\s+(.+)$`)
	reIsLabel  = regexp.MustCompile(`^[a-z_][a-z_0-9]*$`)
)

// dispatchDirective recognizes a leading '.' keyword and executes it.
// It reports whether the line was a directive at all, so the caller
// can fall through to instruction dispatch otherwise.
func (a *Assembler) dispatchDirective(rest string) (bool, error) {
	if !strings.HasPrefix(rest, ".") {
		return false, nil
	}

	switch {
	case rePC.MatchString(rest):
		return true, a.doPC(rePC.FindStringSubmatch(rest)[1])

	case reDef.MatchString(rest):
		m := reDef.FindStringSubmatch(rest)
		return true, a.doDef(m[1], m[2])

	case reTextLit.MatchString(rest):
		m := reTextLit.FindStringSubmatch(rest)
		return true, a.doText(m[1] == "z", m[2])

	case reDataList.MatchString(rest):
		m := reDataList.FindStringSubmatch(rest)
		return true, a.doDataList(m[1], m[2])

	default:
		return true, a.err(SyntaxError, "unrecognized directive")
	}
}

func (a *Assembler) doPC(tok string) error {
	v, err := a.resolveImmediate(tok)
	if err != nil {
		return err
	}
	seg := segment.New(v)
	a.segments = append(a.segments, seg)
	a.active = seg
	return nil
}

func (a *Assembler) doDef(name, expr string) error {
	if _, ok := a.syms.Lookup(name); ok {
		return a.err(DuplicateLabel, "symbol %q already defined", name)
	}

	if m := reDefExpr.FindStringSubmatch(expr); m != nil {
		base, ok := a.syms.Lookup(m[1])
		if !ok {
			return a.err(UndefinedLabel, "%q is not yet defined", m[1])
		}
		lit, err := a.resolveImmediate(m[2])
		if err != nil {
			return err
		}
		return a.syms.Define(name, base+lit)
	}

	v, err := a.resolveImmediate(expr)
	if err != nil {
		return err
	}
	return a.syms.Define(name, v)
}

func (a *Assembler) doText(zero bool, literal string) error {
	if a.active == nil {
		return a.err(MissingSegment, "%s before any .pc", directiveNameFor(zero))
	}
	a.active.AppendBytes([]byte(literal))
	if zero {
		a.active.AppendByte('0')
	}
	return nil
}

func directiveNameFor(zero bool) string {
	if zero {
		return ".textz"
	}
	return ".text"
}

func (a *Assembler) doDataList(kind, listText string) error {
	if a.active == nil {
		return a.err(MissingSegment, ".%s before any .pc", kind)
	}

	width := 1
	switch kind {
	case "word":
		width = 2
	case "dword":
		width = 4
	}

	for _, tok := range strings.Split(listText, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if err := a.emitDataElement(tok, width); err != nil {
			return err
		}
	}
	return nil
}

// emitDataElement appends one width-sized element of a .byte/.word/
// .dword list, deferring a patch if the token is a label not yet
// defined.
func (a *Assembler) emitDataElement(tok string, width int) error {
	if v, err := numeric.Parse(tok); err == nil {
		return a.appendChecked(uint32(v), width)
	} else if err != numeric.ErrInvalidFormat {
		return a.err(ValueOutOfRange, "%s: %v", tok, err)
	}

	if !reIsLabel.MatchString(tok) {
		return a.err(InvalidNumberFormat, "%q is neither a number nor a label", tok)
	}

	if addr, ok := a.syms.Lookup(tok); ok {
		return a.appendChecked(addr, width)
	}

	site := symtab.PatchSite{
		Address:    a.active.PC(),
		Width:      width,
		IsRelative: false,
		Line:       a.line,
		Text:       a.lineText,
	}
	a.patches.Defer(tok, site)
	return a.appendZero(width)
}

func (a *Assembler) appendChecked(v uint32, width int) error {
	max := uint64(1)<<uint(width*8) - 1
	if uint64(v) > max {
		return a.err(ValueOutOfRange, "value %d does not fit in %d bytes", v, width)
	}
	switch width {
	case 1:
		a.active.AppendByte(byte(v))
	case 2:
		a.active.AppendWord(uint16(v))
	case 4:
		a.active.AppendDword(v)
	}
	return nil
}

func (a *Assembler) appendZero(width int) error {
	switch width {
	case 1:
		a.active.AppendByte(0)
	case 2:
		a.active.AppendWord(0)
	case 4:
		a.active.AppendDword(0)
	}
	return nil
}

// resolveImmediate parses a token that must be resolvable right now —
// either a numeric literal or an already-defined symbol. Used by
// .pc and .def, neither of which participates in deferred patching.
func (a *Assembler) resolveImmediate(tok string) (uint32, error) {
	tok = strings.TrimSpace(tok)
	if v, err := numeric.Parse(tok); err == nil {
		return uint32(v), nil
	}
	if addr, ok := a.syms.Lookup(tok); ok {
		return addr, nil
	}
	if reIsLabel.MatchString(tok) {
		return 0, a.err(UndefinedLabel, "%q is not yet defined", tok)
	}
	return 0, a.err(InvalidNumberFormat, "%q is not a valid literal", tok)
}
