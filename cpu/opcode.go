package cpu

import (
	"fmt"
)

// Opcode is the 8-bit instruction ordinal stored in byte-code.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_JUMP                = Opcode(0)  // jmp
	OP_SET                 = Opcode(1)  // set
	OP_GET                 = Opcode(2)  // get
	OP_SWAP                = Opcode(3)  // swp
	OP_STORE_A             = Opcode(4)  // sta
	OP_DECREASE_X          = Opcode(5)  // dex
	OP_POP                 = Opcode(6)  // pop
	OP_PUSH                = Opcode(7)  // psh
	OP_GET_PROGRAM_COUNTER = Opcode(8)  // gpc
	OP_SET_PROGRAM_COUNTER = Opcode(9)  // spc
	OP_CHECK_FLAGS         = Opcode(11) // cfl
	OP_ADD                 = Opcode(12) // add
	OP_SUB                 = Opcode(13) // sub
)

// ArgKind is the kind of argument an opcode carries.
type ArgKind int

//go:generate go tool stringer -linecomment -type=ArgKind
const (
	ARG_NONE    = ArgKind(0) // none
	ARG_LITERAL = ArgKind(1) // literal
	ARG_LABEL   = ArgKind(2) // label
)

// Flag byte bits, as consulted by OP_CHECK_FLAGS.
const (
	FLAG_A_ZERO = 7 // A == 0
	FLAG_X_ZERO = 6 // X == 0
)

// opcodeArg is the argument kind of every defined opcode.
var opcodeArg = map[Opcode]ArgKind{
	OP_JUMP:                ARG_LABEL,
	OP_SET:                 ARG_LITERAL,
	OP_GET:                 ARG_LITERAL,
	OP_SWAP:                ARG_NONE,
	OP_STORE_A:             ARG_LITERAL,
	OP_DECREASE_X:          ARG_NONE,
	OP_POP:                 ARG_NONE,
	OP_PUSH:                ARG_NONE,
	OP_GET_PROGRAM_COUNTER: ARG_NONE,
	OP_SET_PROGRAM_COUNTER: ARG_NONE,
	OP_CHECK_FLAGS:         ARG_LITERAL,
	OP_ADD:                 ARG_NONE,
	OP_SUB:                 ARG_NONE,
}

// mnemonicMap maps mnemonics to opcodes.
var mnemonicMap = map[string]Opcode{
	"jmp": OP_JUMP,
	"set": OP_SET,
	"get": OP_GET,
	"sta": OP_STORE_A,
	"swp": OP_SWAP,
	"dex": OP_DECREASE_X,
	"pop": OP_POP,
	"psh": OP_PUSH,
	"gpc": OP_GET_PROGRAM_COUNTER,
	"spc": OP_SET_PROGRAM_COUNTER,
	"cfl": OP_CHECK_FLAGS,
	"add": OP_ADD,
	"sub": OP_SUB,
}

// LookupMnemonic returns the opcode for a mnemonic.
func LookupMnemonic(mnemonic string) (op Opcode, ok bool) {
	op, ok = mnemonicMap[mnemonic]
	return
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opcodeArg[op]
	return ok
}

// Argument returns the argument kind of the opcode.
func (op Opcode) Argument() ArgKind {
	return opcodeArg[op]
}

// Instruction is a single encoded instruction.
//
// Only opcodes whose ArgKind is not ARG_NONE carry an Argument. For OP_JUMP
// the Argument is the resolved instruction index of the target label.
type Instruction struct {
	Opcode   Opcode
	Argument uint16
}

// MakeInstruction creates an instruction, enforcing the opcode's argument kind.
func MakeInstruction(op Opcode, args ...uint16) (ins Instruction, err error) {
	if !op.Valid() {
		err = ErrOpcodeInvalid
		return
	}

	if len(args) > 1 {
		err = ErrArgumentExtra
		return
	}

	ins.Opcode = op
	if len(args) == 1 {
		if op.Argument() == ARG_NONE {
			err = ErrArgumentUnexpected
			return
		}
		ins.Argument = args[0]
	}

	return
}

// Record returns the fixed-width byte-code record for the instruction.
func (ins Instruction) Record() Record {
	return Record{Opcode: uint8(ins.Opcode), Argument: ins.Argument}
}

// String returns the assembly language representation of the instruction.
func (ins Instruction) String() string {
	if ins.Opcode.Argument() == ARG_NONE {
		return ins.Opcode.String()
	}

	return fmt.Sprintf("%v %d", ins.Opcode, ins.Argument)
}

// RECORD_SIZE is the size in bytes of a record in a binary image.
const RECORD_SIZE = 3

// Record is a byte-code record, as executed by the Processor.
type Record struct {
	Opcode   uint8
	Argument uint16
}

// Instruction decodes the record.
func (rec Record) Instruction() (ins Instruction, err error) {
	op := Opcode(rec.Opcode)
	if !op.Valid() {
		err = ErrOpcodeInvalid
		return
	}

	ins = Instruction{Opcode: op}
	if op.Argument() != ARG_NONE {
		ins.Argument = rec.Argument
	}

	return
}

// String returns the disassembly of the record.
func (rec Record) String() string {
	ins, err := rec.Instruction()
	if err != nil {
		return fmt.Sprintf(".byte 0x%02x 0x%04x", rec.Opcode, rec.Argument)
	}

	return ins.String()
}
