package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enigma/internal/paths"
)

var terminateCmd = &cobra.Command{
	Use:   "terminate",
	Short: "End the session and discard all in-memory state",
	Long: `Release the machine, configuration and history and remove the
workspace autosnapshot. Snapshot files written with the save command are
kept.`,
	Run: runTerminate,
}

func init() {
	rootCmd.AddCommand(terminateCmd)
}

func runTerminate(cmd *cobra.Command, args []string) {
	logger := newLogger("human")
	root := mustGetRoot()
	engine := mustGetEngine(root, logger)

	if err := engine.Terminate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Remove(paths.AutosavePath(root))

	fmt.Println("Session terminated")
}
