package cpu

import (
	"errors"

	"github.com/ezrec/compufun/translate"
)

var f = translate.From

var (
	// Error categories
	ErrLabel     = errors.New(f("label"))
	ErrMnemonic  = errors.New(f("mnemonic"))
	ErrArgument  = errors.New(f("argument"))
	ErrLineBlank = errors.New(f("blank line"))

	// Processor errors
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrAddressRange   = errors.New(f("address out of range"))
	ErrOpcodeInvalid  = errors.New(f("opcode invalid"))

	// Assembler errors
	ErrArgumentExtra      error = errArgument(f("excessive arguments"))
	ErrArgumentUnexpected error = errArgument(f("argument not permitted"))
)

// errArgument is an ErrArgument without further context.
type errArgument string

func (ea errArgument) Error() string {
	return string(ea)
}

func (ea errArgument) Is(err error) bool {
	return err == ErrArgument
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Is(err error) bool {
	return err == ErrLabel
}

type ErrLabelDuplicate string

func (el ErrLabelDuplicate) Error() string {
	return f("label %v duplicated", string(el))
}

func (el ErrLabelDuplicate) Is(err error) bool {
	return err == ErrLabel
}

type ErrMnemonicInvalid string

func (em ErrMnemonicInvalid) Error() string {
	return f("'%v' is not a mnemonic", string(em))
}

func (em ErrMnemonicInvalid) Is(err error) bool {
	return err == ErrMnemonic
}

type ErrArgumentInvalid string

func (ea ErrArgumentInvalid) Error() string {
	return f("'%v' is not a 16-bit value", string(ea))
}

func (ea ErrArgumentInvalid) Is(err error) bool {
	return err == ErrArgument
}

// ErrOpcode decorates a runtime error with the failing record.
type ErrOpcode Record

func (eo ErrOpcode) Error() string {
	return f("bad record 0x%02x 0x%04x %v", eo.Opcode, eo.Argument, Record(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSyntax locates an assembly error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
