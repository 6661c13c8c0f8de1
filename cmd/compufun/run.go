package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/compufun/emulator"
)

var runLimit int
var runState bool
var runAddr int
var runLength int

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run programFile",
	Short: "Execute a program",
	Long: `Run executes a program until it leaves the end of its byte-code.
The program may be source, or a '.bin' byte-code image.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		path := args[0]

		prog, err := loadProgram(path)
		if err != nil {
			return fmt.Errorf("%v: %w", path, err)
		}

		emu := emulator.NewEmulator()
		emu.Verbose = verbose
		emu.Program = prog
		err = emu.Reset()
		if err != nil {
			return
		}

		if runState {
			// Dump the final state, even on a runtime fault.
			atexit.Register(func() {
				emu.WriteState(os.Stderr, runAddr, runLength)
			})
		}

		_, err = emu.Run(runLimit)
		if err != nil {
			return fmt.Errorf("%v: %w", path, err)
		}

		return
	},
}

func init() {
	runCmd.Flags().IntVarP(&runLimit, "limit", "n", 0, "maximum ticks to execute (0 is unlimited)")
	runCmd.Flags().BoolVarP(&runState, "state", "s", false, "print processor state on exit")
	runCmd.Flags().IntVar(&runAddr, "addr", 0, "first memory address of the state dump")
	runCmd.Flags().IntVar(&runLength, "length", 0x100, "bytes of memory in the state dump")
	rootCmd.AddCommand(runCmd)
}
