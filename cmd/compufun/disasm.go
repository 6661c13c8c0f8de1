package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/compufun/cpu"
)

// disasmCmd represents the disasm command
var disasmCmd = &cobra.Command{
	Use:   "disasm binaryFile",
	Short: "Print the source for a byte-code image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			return
		}

		records, err := cpu.DecodeBinary(data)
		if err != nil {
			return fmt.Errorf("%v: %w", path, err)
		}

		text, err := cpu.Disassemble(records)
		if err != nil {
			return fmt.Errorf("%v: %w", path, err)
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return
	},
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}
