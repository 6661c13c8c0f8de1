package emulator

import (
	"errors"

	"github.com/ezrec/compufun/translate"
)

var f = translate.From

// ErrTickLimit is returned by Run when the program is still running after
// the requested number of ticks.
var ErrTickLimit = errors.New(f("tick limit reached"))

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Pc     uint16
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc 0x%04x %v", err.Pc, err.Err)
	}
	return f("line %d pc 0x%04x %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
