package cpu

import (
	"encoding/binary"
	"iter"
	"strings"
)

// Program is an assembled program.
type Program struct {
	Instructions []Instruction  // Encoded instructions, in execution order.
	Label        map[string]int // Jump labels to instruction indexes.
	LineNo       []int          // Source line number of each instruction.
	Lines        []string       // Source text of each instruction.
}

// Debug locates a program counter in the source.
type Debug struct {
	*Instruction
	LineNo int
	Line   string
}

// NewProgram creates a program from byte-code records. The program has no
// source line information.
func NewProgram(records []Record) (prog *Program, err error) {
	instructions := make([]Instruction, len(records))
	for n, rec := range records {
		instructions[n], err = rec.Instruction()
		if err != nil {
			return
		}
	}

	prog = &Program{
		Instructions: instructions,
	}

	return
}

// Debug returns the source information of the instruction at pc.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	if int(pc) >= len(prog.Instructions) {
		return
	}

	dbg.Instruction = &prog.Instructions[pc]
	if int(pc) < len(prog.LineNo) {
		dbg.LineNo = prog.LineNo[pc]
	}
	if int(pc) < len(prog.Lines) {
		dbg.Line = prog.Lines[pc]
	}

	return
}

// Codes iterates over the byte-code records of the program.
func (prog *Program) Codes() iter.Seq2[uint16, Record] {
	return func(yield func(pc uint16, rec Record) bool) {
		for n, ins := range prog.Instructions {
			if !yield(uint16(n), ins.Record()) {
				return
			}
		}
	}
}

// Records returns the byte-code of the program.
func (prog *Program) Records() (records []Record) {
	records = make([]Record, 0, len(prog.Instructions))
	for _, rec := range prog.Codes() {
		records = append(records, rec)
	}

	return
}

// Binary returns the flat byte-code image of the program.
func (prog *Program) Binary() (bins []byte) {
	return EncodeBinary(prog.Records())
}

// Disassembly returns the program listing, one instruction per line.
func (prog *Program) Disassembly() string {
	var sb strings.Builder
	for _, ins := range prog.Instructions {
		sb.WriteString(ins.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// EncodeBinary flattens records into a byte-code image. Each record is the
// opcode byte followed by the little-endian argument.
func EncodeBinary(records []Record) (bins []byte) {
	bins = make([]byte, 0, len(records)*RECORD_SIZE)
	for _, rec := range records {
		bins = append(bins, rec.Opcode)
		bins = binary.LittleEndian.AppendUint16(bins, rec.Argument)
	}

	return
}

// DecodeBinary splits a byte-code image into records.
func DecodeBinary(bins []byte) (records []Record, err error) {
	if len(bins)%RECORD_SIZE != 0 {
		err = ErrAddressRange
		return
	}

	records = make([]Record, 0, len(bins)/RECORD_SIZE)
	for n := 0; n < len(bins); n += RECORD_SIZE {
		records = append(records, Record{
			Opcode:   bins[n],
			Argument: binary.LittleEndian.Uint16(bins[n+1:]),
		})
	}

	return
}

// Disassemble returns the listing of byte-code records.
func Disassemble(records []Record) (text string, err error) {
	prog, err := NewProgram(records)
	if err != nil {
		return
	}

	text = prog.Disassembly()
	return
}
