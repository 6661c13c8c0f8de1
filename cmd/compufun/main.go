// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/compufun/cpu"
	"github.com/ezrec/compufun/translate"
)

var f = translate.From

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "compufun",
	Short: "Assembler and emulator for the compufun machine",
	Long: `Compufun assembles line-oriented source into 3-byte records, and
executes those records on an emulated 8-bit accumulator machine with
64KiB of data memory and a byte stack.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// loadProgram reads a program from a path. Paths ending in '.bin' are
// decoded as byte-code, all others are assembled as source.
func loadProgram(path string) (prog *cpu.Program, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	if isBinary(path) {
		var records []cpu.Record
		records, err = cpu.DecodeBinary(data)
		if err != nil {
			return
		}
		prog, err = cpu.NewProgram(records)
		return
	}

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err = asm.Assemble(string(data))
	return
}

func main() {
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		atexit.Fatal(err)
	}

	atexit.Exit(0)
}
