package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"enigma/internal/machine"
)

var (
	configureFormat    string
	configureRotors    string
	configurePositions string
	configureReflector string
	configurePlugboard string
	configureRandom    bool
)

// ConfigureResponseCLI reports the installed configuration
type ConfigureResponseCLI struct {
	RotorIDs    []int  `json:"rotorIds"`
	Positions   string `json:"positions"`
	ReflectorID string `json:"reflectorId"`
	Plugboard   string `json:"plugboard,omitempty"`
	Random      bool   `json:"random"`
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the machine manually or randomly",
	Long: `Install a code on the loaded machine. Either give the full setting
manually or let the machine draw a random valid one.

Examples:
  enigma configure --rotors 1,2,3 --positions ABC --reflector I
  enigma configure --rotors 3,1,2 --positions FAD --reflector II --plugboard ABCD
  enigma configure --random`,
	Run: runConfigure,
}

func init() {
	configureCmd.Flags().StringVar(&configureFormat, "format", "human", "Output format (json, human)")
	configureCmd.Flags().StringVar(&configureRotors, "rotors", "", "Comma-separated rotor ids, left to right")
	configureCmd.Flags().StringVar(&configurePositions, "positions", "", "Start window letters, one per rotor")
	configureCmd.Flags().StringVar(&configureReflector, "reflector", "", "Reflector id (I, II, ...)")
	configureCmd.Flags().StringVar(&configurePlugboard, "plugboard", "", "Plugboard pairs, two letters per plug")
	configureCmd.Flags().BoolVar(&configureRandom, "random", false, "Draw a random valid configuration")
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) {
	logger := newLogger(configureFormat)
	root := mustGetRoot()
	engine := mustGetEngine(root, logger)

	var cfg machine.CodeConfig
	if configureRandom {
		drawn, err := engine.ConfigureRandom()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = drawn
	} else {
		rotorIDs, err := parseRotorIDs(configureRotors)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = machine.CodeConfig{
			RotorIDs:    rotorIDs,
			Positions:   configurePositions,
			ReflectorID: configureReflector,
			Plugboard:   configurePlugboard,
		}
		if err := engine.ConfigureManual(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	persistSession(engine, root, logger)

	response := &ConfigureResponseCLI{
		RotorIDs:    cfg.RotorIDs,
		Positions:   cfg.Positions,
		ReflectorID: cfg.ReflectorID,
		Plugboard:   cfg.Plugboard,
		Random:      configureRandom,
	}
	output, err := FormatResponse(response, OutputFormat(configureFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func parseRotorIDs(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("--rotors is required unless --random is given")
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid rotor id %q: ids are numeric", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
