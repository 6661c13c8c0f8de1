// Package cpu implements the processor and assembler for the compufun machine.
//
// The processor has an 8-bit accumulator (A), an 8-bit index register (X),
// a 16-bit program counter (PC) indexing byte-code records, an unbounded
// byte stack, and 64KB of data memory. Conditional execution is done by
// cfl, which skips the next record when a flag derived from A and X is set.
//
// The assembler accepts one instruction, label definition (":name"), or
// comment (";" and at least two more characters) per line, and produces a
// Program of fixed-width records.
package cpu
