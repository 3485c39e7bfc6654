package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"enigma/internal/paths"
	"enigma/internal/registry"
	"enigma/internal/spec"
)

var machinesFormat string

// MachineEntryCLI is one registered machine
type MachineEntryCLI struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// MachinesResponseCLI lists the registered machines
type MachinesResponseCLI struct {
	Machines []MachineEntryCLI `json:"machines"`
}

var machinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "Manage the registry of machine description files",
	Run:   runMachinesList,
}

var machinesAddCmd = &cobra.Command{
	Use:   "add <name> <machine-file>",
	Short: "Register a machine description under an alias",
	Args:  cobra.ExactArgs(2),
	Run:   runMachinesAdd,
}

var machinesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a registered machine alias",
	Args:  cobra.ExactArgs(1),
	Run:   runMachinesRemove,
}

func init() {
	machinesCmd.Flags().StringVar(&machinesFormat, "format", "human", "Output format (json, human)")
	machinesCmd.AddCommand(machinesAddCmd)
	machinesCmd.AddCommand(machinesRemoveCmd)
	rootCmd.AddCommand(machinesCmd)
}

func runMachinesList(cmd *cobra.Command, args []string) {
	root := mustGetRoot()

	reg, err := registry.Load(paths.RegistryPath(root))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	response := &MachinesResponseCLI{Machines: []MachineEntryCLI{}}
	for _, entry := range reg.Machines {
		response.Machines = append(response.Machines, MachineEntryCLI{
			Name: entry.Name,
			Path: entry.Path,
		})
	}

	output, err := FormatResponse(response, OutputFormat(machinesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func runMachinesAdd(cmd *cobra.Command, args []string) {
	root := mustGetRoot()
	name, path := args[0], args[1]

	abs, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Reject files that do not parse; a registry full of broken
	// aliases helps no one.
	if _, err := spec.Load(abs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := paths.WorkspaceDir(root); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reg, err := registry.Load(paths.RegistryPath(root))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := reg.Add(name, abs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := reg.Save(paths.RegistryPath(root)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Registered %s -> %s\n", name, abs)
}

func runMachinesRemove(cmd *cobra.Command, args []string) {
	root := mustGetRoot()
	name := args[0]

	reg, err := registry.Load(paths.RegistryPath(root))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := reg.Remove(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := reg.Save(paths.RegistryPath(root)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed %s\n", name)
}
