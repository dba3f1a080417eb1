package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typefall/internal/registry"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List word providers",
	Long:  `Shows the word sources that can feed the word bank.`,
	Run:   runProviders,
}

func runProviders(_ *cobra.Command, _ []string) {
	providers := registry.List()

	maxIDLen := 2 // "ID" header
	for _, p := range providers {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, p := range providers {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Description)
	}

	fmt.Println()
	fmt.Println("Select one with --provider <id> or TYPEFALL_WORDS_PROVIDER.")
}
