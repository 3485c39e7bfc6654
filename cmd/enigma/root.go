package main

import (
	"github.com/spf13/cobra"

	"enigma/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "enigma - configurable rotor-cipher machine",
	Long: `enigma simulates a configurable rotor-cipher machine: a fixed alphabet,
an ordered set of wired rotors with notches, a symmetric reflector and an
optional plugboard, combined into a deterministic, self-reciprocal cipher.

Session state persists in the .enigma/ directory of the working directory,
so configuration and rotor positions carry across invocations.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("enigma version {{.Version}}\n")
}
