package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore the engine state from a snapshot file",
	Long: `Replace the current machine, configuration, rotor positions and
history with the contents of a snapshot file. On any failure the current
state is left untouched.`,
	Args: cobra.ExactArgs(1),
	Run:  runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) {
	logger := newLogger("human")
	root := mustGetRoot()
	engine := mustGetEngine(root, logger)

	if err := engine.LoadSnapshot(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	persistSession(engine, root, logger)

	state := engine.MachineState()
	if state.Current != nil {
		fmt.Printf("Snapshot restored: rotors %s at %s, %d message(s) in history\n",
			joinInts(state.Current.RotorIDs), state.Current.Positions,
			engine.History().TotalMessages)
	} else {
		fmt.Println("Snapshot restored: machine loaded, not yet configured")
	}
}
