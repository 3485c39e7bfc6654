package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enigma/internal/history"
)

var historyFormat string

// HistoryResponseCLI reports processed messages grouped by the
// configuration that was active when each group began
type HistoryResponseCLI struct {
	Groups        []history.Group `json:"groups"`
	TotalMessages int             `json:"totalMessages"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show processed messages grouped by configuration",
	Long: `Show every processed message, grouped by the original configuration
that was active when it was processed. Reset does not open a new group;
only an actual reconfiguration does.`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	logger := newLogger(historyFormat)
	root := mustGetRoot()
	engine := mustGetEngine(root, logger)

	report := engine.History()
	response := &HistoryResponseCLI{
		Groups:        report.Groups,
		TotalMessages: report.TotalMessages,
	}

	output, err := FormatResponse(response, OutputFormat(historyFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
