package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enigma/internal/machine"
)

var (
	processFormat string
	processTrace  bool
)

// ProcessResponseCLI reports one processed message
type ProcessResponseCLI struct {
	Input           string                `json:"input"`
	Output          string                `json:"output"`
	PositionsBefore string                `json:"positionsBefore"`
	PositionsAfter  string                `json:"positionsAfter"`
	Traces          []machine.SignalTrace `json:"traces,omitempty"`
}

var processCmd = &cobra.Command{
	Use:   "process <text>",
	Short: "Encipher a message with the current configuration",
	Long: `Process a message through the machine. Every character steps the
rotors before being translated, so the same command run twice produces
different output. Use --trace to see the full per-character signal path.`,
	Args: cobra.ExactArgs(1),
	Run:  runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processFormat, "format", "human", "Output format (json, human)")
	processCmd.Flags().BoolVar(&processTrace, "trace", false, "Include the per-character signal trace")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) {
	logger := newLogger(processFormat)
	root := mustGetRoot()
	engine := mustGetEngine(root, logger)

	text := args[0]

	traces, err := engine.Process(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	persistSession(engine, root, logger)

	response := &ProcessResponseCLI{Input: text}
	if len(traces) > 0 {
		response.PositionsBefore = traces[0].PositionsBefore
		response.PositionsAfter = traces[len(traces)-1].PositionsAfter
	}
	for _, tr := range traces {
		response.Output += tr.Output
	}
	if processTrace {
		response.Traces = traces
	}

	output, err := FormatResponse(response, OutputFormat(processFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
