package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *StatusResponseCLI:
		return formatStatusHuman(v)
	case *ConfigureResponseCLI:
		return formatConfigureHuman(v)
	case *ProcessResponseCLI:
		return formatProcessHuman(v)
	case *HistoryResponseCLI:
		return formatHistoryHuman(v)
	case *MachinesResponseCLI:
		return formatMachinesHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatStatusHuman(v *StatusResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("enigma v%s\n", v.Version))
	b.WriteString(strings.Repeat("=", 40) + "\n")

	if !v.Loaded {
		b.WriteString("No machine loaded. Run: enigma load <machine-file>\n")
		return b.String(), nil
	}

	b.WriteString(fmt.Sprintf("Alphabet:   %s (%d symbols)\n", v.Alphabet, len([]rune(v.Alphabet))))
	b.WriteString(fmt.Sprintf("Rotors:     %d available, %d per configuration\n", v.RotorsAvailable, v.RotorCount))
	b.WriteString(fmt.Sprintf("Reflectors: %s\n", strings.Join(v.Reflectors, ", ")))

	if !v.Configured {
		b.WriteString("\nNot configured. Run: enigma configure\n")
		return b.String(), nil
	}

	b.WriteString(fmt.Sprintf("\nRotor order:  %s\n", joinInts(v.RotorIDs)))
	b.WriteString(fmt.Sprintf("Ring start:   %s\n", v.OriginalPositions))
	b.WriteString(fmt.Sprintf("Windows now:  %s\n", v.CurrentPositions))
	b.WriteString(fmt.Sprintf("Reflector:    %s\n", v.ReflectorID))
	if v.Plugboard != "" {
		b.WriteString(fmt.Sprintf("Plugboard:    %s\n", v.Plugboard))
	}
	b.WriteString(fmt.Sprintf("Processed:    %d message(s)\n", v.ProcessedCount))

	return b.String(), nil
}

func formatConfigureHuman(v *ConfigureResponseCLI) (string, error) {
	var b strings.Builder
	b.WriteString("Machine configured\n")
	b.WriteString(fmt.Sprintf("  Rotors:    %s\n", joinInts(v.RotorIDs)))
	b.WriteString(fmt.Sprintf("  Positions: %s\n", v.Positions))
	b.WriteString(fmt.Sprintf("  Reflector: %s\n", v.ReflectorID))
	if v.Plugboard != "" {
		b.WriteString(fmt.Sprintf("  Plugboard: %s\n", v.Plugboard))
	}
	return b.String(), nil
}

func formatProcessHuman(v *ProcessResponseCLI) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n", v.Output))
	b.WriteString(fmt.Sprintf("(windows %s -> %s)\n", v.PositionsBefore, v.PositionsAfter))

	if len(v.Traces) > 0 {
		b.WriteString("\nTrace:\n")
		for _, tr := range v.Traces {
			b.WriteString(fmt.Sprintf("  %s -> %s  advanced=%v  windows=%s\n",
				tr.Input, tr.Output, tr.AdvancedRotors, tr.PositionsAfter))
		}
	}
	return b.String(), nil
}

func formatHistoryHuman(v *HistoryResponseCLI) (string, error) {
	var b strings.Builder

	if len(v.Groups) == 0 {
		b.WriteString("No messages processed yet.\n")
		return b.String(), nil
	}

	for i, g := range v.Groups {
		b.WriteString(fmt.Sprintf("Configuration %d: rotors %s, start %s, reflector %s",
			i+1, joinInts(g.State.RotorIDs), g.State.Positions, g.State.ReflectorID))
		if g.State.Plugboard != "" {
			b.WriteString(fmt.Sprintf(", plugboard %s", g.State.Plugboard))
		}
		b.WriteString("\n")
		for _, r := range g.Records {
			b.WriteString(fmt.Sprintf("  %s -> %s (%dms)\n", r.Input, r.Output, r.DurationMs))
		}
	}
	b.WriteString(fmt.Sprintf("\n%d message(s) total\n", v.TotalMessages))
	return b.String(), nil
}

func formatMachinesHuman(v *MachinesResponseCLI) (string, error) {
	var b strings.Builder

	if len(v.Machines) == 0 {
		b.WriteString("No machines registered. Run: enigma machines add <name> <file>\n")
		return b.String(), nil
	}

	for _, m := range v.Machines {
		b.WriteString(fmt.Sprintf("%-16s %s\n", m.Name, m.Path))
	}
	return b.String(), nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}
