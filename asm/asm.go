// Package asm implements the A65000 assembly core: line normalization,
// directive handling, operand classification, addressing-mode legality,
// instruction encoding, and end-of-pass symbol patching. It performs no
// I/O and does no logging — the CLI wrapper in cmd/a65000asm owns both.
package asm

import (
	"strings"

	"github.com/zmajoros/a65000asm/segment"
	"github.com/zmajoros/a65000asm/symtab"
)

// Assembler holds all state for one assembly run. It is not safe for
// concurrent use and is not meant to be reused across runs — construct
// a fresh one with New for each source file.
type Assembler struct {
	segments segment.List
	active   *segment.Segment
	syms     *symtab.Table
	patches  *symtab.Queue

	line     int
	lineText string
}

// New returns an Assembler ready to process source.
func New() *Assembler {
	return &Assembler{
		syms:    symtab.NewTable(),
		patches: symtab.NewQueue(),
	}
}

// Assemble runs the single forward pass over src followed by the
// end-of-pass patch resolution, returning the ordered segment list the
// pass produced. Empty source yields an empty, non-error segment list.
func (a *Assembler) Assemble(src string) (segment.List, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	for i, raw := range lines {
		a.line = i + 1
		a.lineText = raw
		if err := a.processLine(raw); err != nil {
			return a.segments, err
		}
	}

	if errs := a.patches.Resolve(a.syms, a.segments); len(errs) > 0 {
		return a.segments, a.wrapPatchErrors(errs)
	}
	return a.segments, nil
}

// Symbols returns every label defined during the run and the address
// it resolved to. Only meaningful after Assemble has returned without
// error.
func (a *Assembler) Symbols() map[string]uint32 {
	return a.syms.All()
}

// wrapPatchErrors surfaces the first unresolved patch as the returned
// error kind (UndefinedLabel or SymbolOutOfRange) while keeping the
// rest of the detail in its message, since *Error carries one kind.
func (a *Assembler) wrapPatchErrors(errs []error) error {
	kind := UndefinedLabel
	if strings.Contains(errs[0].Error(), "range") {
		kind = SymbolOutOfRange
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return &Error{Kind: kind, Line: 0, Text: "", Err: joinErrors(msgs)}
}

func joinErrors(msgs []string) error {
	return &multiError{msgs: msgs}
}

type multiError struct{ msgs []string }

func (m *multiError) Error() string { return strings.Join(m.msgs, "; ") }

func (a *Assembler) processLine(raw string) error {
	stripped := stripComment(raw)
	rest, label, hasLabel := splitLabel(stripped)

	if hasLabel {
		if a.active == nil {
			return a.err(MissingSegment, "label %q defined before any .pc", label)
		}
		if err := a.syms.Define(label, a.active.PC()); err != nil {
			return a.err(DuplicateLabel, "%v", err)
		}
	}

	rest = normalizeRemainder(rest)
	if strings.TrimSpace(rest) == "" {
		return nil
	}

	consumed, err := a.dispatchDirective(rest)
	if err != nil {
		return err
	}
	if consumed {
		return nil
	}

	return a.dispatchInstruction(rest)
}

func (a *Assembler) err(kind ErrorKind, format string, args ...any) *Error {
	return errf(kind, a.line, a.lineText, format, args...)
}
