package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Return the rotors to their original start positions",
	Long: `Turn every rotor back to the window letter it had when the current
configuration was installed. Wiring, reflector, plugboard and history
are untouched.`,
	Run: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) {
	logger := newLogger("human")
	root := mustGetRoot()
	engine := mustGetEngine(root, logger)

	if err := engine.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	persistSession(engine, root, logger)

	state := engine.MachineState()
	fmt.Printf("Rotors reset to %s\n", state.Current.Positions)
}
