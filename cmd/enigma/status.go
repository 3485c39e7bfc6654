package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enigma/internal/version"
)

var statusFormat string

// StatusResponseCLI reports the loaded machine and active configuration
type StatusResponseCLI struct {
	Version           string   `json:"version"`
	Loaded            bool     `json:"loaded"`
	Alphabet          string   `json:"alphabet,omitempty"`
	RotorsAvailable   int      `json:"rotorsAvailable,omitempty"`
	RotorCount        int      `json:"rotorCount,omitempty"`
	Reflectors        []string `json:"reflectors,omitempty"`
	Configured        bool     `json:"configured"`
	RotorIDs          []int    `json:"rotorIds,omitempty"`
	OriginalPositions string   `json:"originalPositions,omitempty"`
	CurrentPositions  string   `json:"currentPositions,omitempty"`
	ReflectorID       string   `json:"reflectorId,omitempty"`
	Plugboard         string   `json:"plugboard,omitempty"`
	ProcessedCount    int      `json:"processedCount"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the loaded machine and active configuration",
	Run:   runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	logger := newLogger(statusFormat)
	root := mustGetRoot()
	engine := mustGetEngine(root, logger)

	response := &StatusResponseCLI{
		Version:        version.Version,
		Loaded:         engine.Loaded(),
		Configured:     engine.Configured(),
		ProcessedCount: engine.ProcessedCount(),
	}

	if spec := engine.Spec(); spec != nil {
		response.Alphabet = spec.Alphabet
		response.RotorsAvailable = len(spec.Rotors)
		response.RotorCount = spec.RotorCount
		for _, ref := range spec.Reflectors {
			response.Reflectors = append(response.Reflectors, ref.ID)
		}
	}

	if response.Configured {
		state := engine.MachineState()
		response.RotorIDs = state.Current.RotorIDs
		response.OriginalPositions = state.Original.Positions
		response.CurrentPositions = state.Current.Positions
		response.ReflectorID = state.Current.ReflectorID
		response.Plugboard = state.Current.Plugboard
	}

	output, err := FormatResponse(response, OutputFormat(statusFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
