// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/compufun/cpu"
)

// MEMORY_ROW is the number of bytes shown per row of a memory dump.
const MEMORY_ROW = 16

// Emulator state. Processor + the program it runs.
type Emulator struct {
	Verbose        bool         // If set, enables verbose logging.
	*cpu.Processor              // Reference to the processor simulation.
	Program        *cpu.Program // Reference to the currently running program listing.
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Processor: cpu.NewProcessor(),
		Program:   &cpu.Program{},
	}

	return
}

// Assemble assembles source text and installs it as the program.
func (emu *Emulator) Assemble(source string) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Assemble(source)
	if err != nil {
		return
	}

	emu.Program = prog
	err = emu.Reset()
	return
}

// Reset the processor, and load the program byte-code.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		emu.Program = &cpu.Program{}
	}

	emu.Processor.Verbose = emu.Verbose
	emu.Processor.Load(emu.Program.Records())

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Processor.Ticks
}

// Pc returns current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Processor.PC)
}

// Code returns the current byte-code record.
func (emu *Emulator) Code() cpu.Record {
	for pc, rec := range emu.Program.Codes() {
		if emu.Processor.PC == pc {
			return rec
		}
	}

	return cpu.Record{}
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	return emu.Program.Debug(emu.Processor.PC).LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set processor verbosity
	emu.Processor.Verbose = emu.Verbose

	lineno := emu.LineNo()
	pc := emu.Processor.PC
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	err = emu.Processor.Tick()
	if errors.Is(err, cpu.ErrPcEmpty) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks the emulator until the program ends, an error occurs, or
// limit ticks have executed. A limit <= 0 runs without limit.
func (emu *Emulator) Run(limit int) (ticks int, err error) {
	for limit <= 0 || ticks < limit {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
		ticks++
	}

	// Stopped exactly at the end of the program.
	if emu.Pc() >= len(emu.Processor.Program()) {
		return
	}

	if emu.Verbose {
		log.Print(f("emulator: stopped after %v ticks at pc 0x%04x", ticks, emu.Pc()))
	}

	err = ErrTickLimit
	return
}

// WriteState renders the registers, stack, and a window of memory starting
// at addr as tables.
func (emu *Emulator) WriteState(w io.Writer, addr int, length int) (err error) {
	p := emu.Processor

	regTable := table.NewWriter()
	regTable.SetTitle(f("Processor"))
	regTable.AppendHeader(table.Row{"PC", "A", "X", "Flags", "Stack", "Ticks", "Line"})
	top := "--"
	if val, ok := p.Stack.Peek(); ok {
		top = fmt.Sprintf("0x%02x", val)
	}
	regTable.AppendRow(table.Row{
		fmt.Sprintf("0x%04x", p.PC),
		fmt.Sprintf("0x%02x", p.A),
		fmt.Sprintf("0x%02x", p.X),
		fmt.Sprintf("%08b", p.Flags()),
		fmt.Sprintf("%v [%d]", top, p.Stack.Depth()),
		p.Ticks,
		emu.LineNo(),
	})

	_, err = fmt.Fprintln(w, regTable.Render())
	if err != nil || length <= 0 {
		return
	}

	memTable := table.NewWriter()
	memTable.SetTitle(f("Memory"))
	header := table.Row{"Addr"}
	for col := range MEMORY_ROW {
		header = append(header, fmt.Sprintf("+%X", col))
	}
	memTable.AppendHeader(header)

	for base := addr; base < addr+length; base += MEMORY_ROW {
		row := table.Row{fmt.Sprintf("0x%04x", base)}
		for col := range MEMORY_ROW {
			if base+col >= addr+length {
				break
			}
			var val uint8
			val, err = p.Read(base + col)
			if err != nil {
				return
			}
			row = append(row, fmt.Sprintf("%02x", val))
		}
		memTable.AppendRow(row)
	}

	_, err = fmt.Fprintln(w, memTable.Render())
	return
}
