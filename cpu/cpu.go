package cpu

import (
	"errors"
	"fmt"
	"log"
	"slices"
)

// MEMORY_SIZE is the size of the processor memory, in bytes.
const MEMORY_SIZE = 1 << 16

// ErrPcEmpty is returned by Tick when the program counter has left the
// program. This is the normal end of a program.
var ErrPcEmpty = errors.New(f("pc empty"))

// Processor is the simulation context for the compufun machine.
type Processor struct {
	Verbose bool // Set to enable verbose logging.

	A      uint8              // Accumulator.
	X      uint8              // Index register.
	PC     uint16             // Program counter, as a record index.
	Stack  Stack              // Byte stack.
	Memory [MEMORY_SIZE]uint8 // Data memory.

	Ticks int // Executed instruction counter.

	program []Record
}

// NewProcessor creates a new processor with zeroed state and no program.
func NewProcessor() (cpu *Processor) {
	cpu = &Processor{}

	return
}

// String returns the current processor state as a string.
func (cpu *Processor) String() (text string) {
	regs := []string{"pc", "a", "x", "flags", "stack"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.PC)
		case "a":
			strval = fmt.Sprintf("%02X", cpu.A)
		case "x":
			strval = fmt.Sprintf("%02X", cpu.X)
		case "flags":
			strval = fmt.Sprintf("%08b", cpu.Flags())
		case "stack":
			val, ok := cpu.Stack.Peek()
			if ok {
				strval = fmt.Sprintf("%02X (%d)", val, cpu.Stack.Depth())
			} else {
				strval = "--"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the processor state.
// - Clears the registers, stack, and memory.
// - Zeros the tick counter.
// - Sets the program counter to the first record.
func (cpu *Processor) Reset() {
	if cpu.Verbose {
		log.Print(f("cpu: reset"))
	}

	cpu.A = 0
	cpu.X = 0
	cpu.PC = 0
	cpu.Stack.Reset()
	clear(cpu.Memory[:])
	cpu.Ticks = 0
}

// Load resets the processor and installs the byte-code to execute.
func (cpu *Processor) Load(program []Record) {
	cpu.Reset()
	cpu.program = slices.Clone(program)
}

// Program returns the installed byte-code.
func (cpu *Processor) Program() []Record {
	return cpu.program
}

// Flags returns the flag byte derived from the registers.
func (cpu *Processor) Flags() (flags uint8) {
	if cpu.A == 0 {
		flags |= 1 << FLAG_A_ZERO
	}
	if cpu.X == 0 {
		flags |= 1 << FLAG_X_ZERO
	}
	return
}

// Read returns the memory byte at addr.
func (cpu *Processor) Read(addr int) (value uint8, err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = ErrAddressRange
		return
	}

	value = cpu.Memory[addr]
	return
}

// Write sets the memory byte at addr.
func (cpu *Processor) Write(addr int, value uint8) (err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = ErrAddressRange
		return
	}

	cpu.Memory[addr] = value
	return
}

// FetchCode fetches the record addressed by the program counter.
func (cpu *Processor) FetchCode() (rec Record, err error) {
	if int(cpu.PC) >= len(cpu.program) {
		err = ErrPcEmpty
		return
	}

	rec = cpu.program[cpu.PC]
	return
}

// Tick executes a single instruction cycle.
func (cpu *Processor) Tick() (err error) {
	rec, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(rec)
	return
}

// Execute executes a single record at the current program counter.
//
// The program counter always advances by one after the record executes,
// including after OP_JUMP and OP_SET_PROGRAM_COUNTER, so those land one
// record past their target. A set OP_CHECK_FLAGS bit advances it once more.
// On error, no state is changed.
func (cpu *Processor) Execute(rec Record) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(rec), err)
		}
	}()
	if cpu.Verbose {
		log.Print(f("%04x: %v", cpu.PC, rec))
	}

	next_pc := cpu.PC
	skip := false

	switch Opcode(rec.Opcode) {
	case OP_JUMP:
		next_pc = rec.Argument
	case OP_SET:
		cpu.A = uint8(rec.Argument)
	case OP_GET:
		cpu.A = cpu.Memory[rec.Argument]
	case OP_STORE_A:
		cpu.Memory[rec.Argument] = cpu.A
	case OP_SWAP:
		cpu.A, cpu.X = cpu.X, cpu.A
	case OP_DECREASE_X:
		cpu.X--
	case OP_POP:
		value, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackUnderflow
			return
		}
		cpu.A = value
	case OP_PUSH:
		cpu.Stack.Push(cpu.A)
	case OP_GET_PROGRAM_COUNTER:
		cpu.A = uint8(cpu.PC)
		cpu.X = uint8(cpu.PC >> 8)
	case OP_SET_PROGRAM_COUNTER:
		next_pc = uint16(cpu.A) | (uint16(cpu.X) << 8)
	case OP_CHECK_FLAGS:
		// Skip when the selected flag is set.
		skip = rec.Argument < 8 && (cpu.Flags()&(1<<rec.Argument)) != 0
	case OP_ADD:
		cpu.A += cpu.X
	case OP_SUB:
		cpu.A -= cpu.X
	default:
		err = ErrOpcodeInvalid
		return
	}

	next_pc++
	if skip {
		next_pc++
	}

	cpu.PC = next_pc
	cpu.Ticks += 1

	return
}
