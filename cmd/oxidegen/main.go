// Command oxidegen generates a Rust SDK crate from a Smithy JSON AST model.
// It is the thin entry point around the codegen pipeline: it loads the model
// and settings, runs the generator, prints diagnostics, and writes the
// rendered artifact set to disk.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oxidegen",
	Short: "Smithy-model-driven Rust SDK generator",
	Long:  "oxidegen transforms a Smithy 2.0 JSON AST model into Rust client and server SDK sources.",
}

func main() {
	rootCmd.AddCommand(generateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
