// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"io"
	"log"
	"maps"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a two pass assembler for the compufun machine.
//
// The first pass purifies the source: comments are dropped, labels are
// bound to the index of the next instruction, and every remaining line is
// mapped back to its source line number. The second pass encodes each
// purified line, so labels may be referenced before they are defined.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Label  map[string]int // Map of jump labels to instruction indexes.
	Lines  []string       // Purified instruction lines.
	LineNo []int          // Source line number of each purified line.
}

// Parse reads an input stream and assembles it into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	source, err := io.ReadAll(input)
	if err != nil {
		return
	}

	prog, err = asm.Assemble(string(source))
	return
}

// Assemble assembles source text into a Program.
//
// On error no Program is returned, and the error is an *ErrSyntax that
// identifies the offending source line.
func (asm *Assembler) Assemble(source string) (prog *Program, err error) {
	err = asm.purify(source)
	if err != nil {
		return
	}

	instructions, err := asm.encode()
	if err != nil {
		return
	}

	prog = &Program{
		Instructions: instructions,
		Label:        maps.Clone(asm.Label),
		LineNo:       append([]int(nil), asm.LineNo...),
		Lines:        append([]string(nil), asm.Lines...),
	}

	return
}

// purify splits the source into lines, collects the labels, and strips
// comments and label definitions.
func (asm *Assembler) purify(source string) (err error) {
	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Lines = asm.Lines[:0]
	asm.LineNo = asm.LineNo[:0]

	for n, line := range strings.Split(source, "\n") {
		lineno := n + 1

		if asm.Verbose {
			log.Print(f("asm: %v: %v", lineno, line))
		}

		if len(line) == 0 {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: ErrLineBlank}
			return
		}

		// ';' followed by at least two characters is a comment.
		if line[0] == ';' && len(line) > 2 {
			continue
		}

		if line[0] == ':' {
			label := line[1:]
			_, ok := asm.Label[label]
			if ok {
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: ErrLabelDuplicate(label)}
				return
			}
			asm.Label[label] = len(asm.Lines)
			continue
		}

		asm.Lines = append(asm.Lines, line)
		asm.LineNo = append(asm.LineNo, lineno)
	}

	return
}

// encode encodes all purified lines.
func (asm *Assembler) encode() (instructions []Instruction, err error) {
	instructions = make([]Instruction, 0, len(asm.Lines))

	for n, line := range asm.Lines {
		var ins Instruction
		ins, err = asm.parseWords(strings.Split(line, " "))
		if err != nil {
			err = &ErrSyntax{LineNo: asm.LineNo[n], Line: line, Err: err}
			instructions = nil
			return
		}
		instructions = append(instructions, ins)
	}

	return
}

// parseWords encodes a mnemonic and its optional argument.
func (asm *Assembler) parseWords(words []string) (ins Instruction, err error) {
	op, ok := LookupMnemonic(words[0])
	if !ok {
		err = ErrMnemonicInvalid(words[0])
		return
	}

	args := words[1:]
	if len(args) > 1 {
		err = ErrArgumentExtra
		return
	}

	var value uint16
	if len(args) == 1 {
		switch op.Argument() {
		case ARG_NONE:
			err = ErrArgumentUnexpected
			return
		case ARG_LABEL:
			value, err = asm.labelOf(args[0])
		default:
			value, err = asm.valueOf(args[0])
		}
		if err != nil {
			return
		}
	}

	if op.Argument() == ARG_NONE {
		ins, err = MakeInstruction(op)
	} else {
		ins, err = MakeInstruction(op, value)
	}

	return
}

// labelOf resolves a jump label to its instruction index.
func (asm *Assembler) labelOf(label string) (value uint16, err error) {
	ip, ok := asm.Label[label]
	if !ok {
		err = ErrLabelMissing(label)
		return
	}

	if ip > 0xffff {
		err = ErrAddressRange
		return
	}

	value = uint16(ip)
	return
}

// valueOf returns the value of a literal argument.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		value, err = asm.parenEval(word[2 : len(word)-1])
		return
	}

	base := 10
	digits := word
	switch {
	case strings.HasPrefix(word, "0x"):
		base = 16
		digits = word[2:]
	case strings.HasPrefix(word, "0b"):
		base = 2
		digits = word[2:]
	}

	v64, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		err = ErrArgumentInvalid(word)
		return
	}

	value = uint16(v64)
	return
}

// parenEval does compile-time $(...) evaluations. Labels are visible as
// their instruction index.
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for label, ip := range asm.Label {
		pred[label] = starlark.MakeInt(ip)
	}

	prog := "rc=" + expr + "\n"
	dict, _err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if _err != nil {
		err = ErrArgumentInvalid("$(" + expr + ")")
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrArgumentInvalid("$(" + expr + ")")
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xffff {
		err = ErrArgumentInvalid("$(" + expr + ")")
		return
	}

	value = uint16(st_int64)
	return
}
