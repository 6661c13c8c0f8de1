package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const binaryExt = ".bin"

var asmOutput string
var asmListing bool

func isBinary(path string) bool {
	return filepath.Ext(path) == binaryExt
}

// binaryPath returns the default output path for a source file.
func binaryPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + binaryExt
}

// asmCmd represents the asm command
var asmCmd = &cobra.Command{
	Use:   "asm sourceFile",
	Short: "Assemble source into byte-code",
	Long: `Asm translates one source file into a byte-code image of 3-byte
records. The image is written next to the source, with a '.bin' extension,
unless -o names another path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		source := args[0]
		if isBinary(source) {
			return fmt.Errorf("%v: %v", source, f("already byte-code"))
		}

		prog, err := loadProgram(source)
		if err != nil {
			return fmt.Errorf("%v: %w", source, err)
		}

		if asmListing {
			for pc, ins := range prog.Instructions {
				fmt.Fprintf(cmd.OutOrStdout(), "%04x: %v\n", pc, ins)
			}
		}

		output := asmOutput
		if len(output) == 0 {
			output = binaryPath(source)
		}

		err = os.WriteFile(output, prog.Binary(), 0o644)
		return
	},
}

func init() {
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "", "byte-code output file")
	asmCmd.Flags().BoolVarP(&asmListing, "listing", "l", false, "print the assembled listing")
	rootCmd.AddCommand(asmCmd)
}
