package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Save the full engine state to a snapshot file",
	Long: `Write the machine description, configuration, rotor positions and
history into one snapshot file. The snapshot restores bit-exactly with
the restore command.`,
	Args: cobra.ExactArgs(1),
	Run:  runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) {
	logger := newLogger("human")
	root := mustGetRoot()
	engine := mustGetEngine(root, logger)

	if err := engine.SaveSnapshot(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Snapshot written to %s\n", args[0])
}
