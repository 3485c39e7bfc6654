package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enigma/internal/paths"
	"enigma/internal/registry"
)

var loadFormat string

var loadCmd = &cobra.Command{
	Use:   "load <machine-file-or-alias>",
	Short: "Load a machine description",
	Long: `Load a machine description file (.yaml, .toml or .json) or a registered
machine alias. Loading replaces any previous machine, configuration and
history.`,
	Args: cobra.ExactArgs(1),
	Run:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) {
	logger := newLogger(loadFormat)
	root := mustGetRoot()
	engine := mustGetEngine(root, logger)

	target := args[0]

	// An alias from the registry wins over a literal path.
	if reg, err := registry.Load(paths.RegistryPath(root)); err == nil {
		if entry, ok := reg.ByName(target); ok {
			target = entry.Path
		}
	}

	if err := engine.LoadMachine(target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	persistSession(engine, root, logger)

	s := engine.Spec()
	fmt.Printf("Loaded machine from %s: %d-symbol alphabet, %d rotors, %d reflector(s)\n",
		target, len([]rune(s.Alphabet)), len(s.Rotors), len(s.Reflectors))
}
